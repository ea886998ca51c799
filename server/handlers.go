// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poiesic/scopegate/analysis"
	"github.com/poiesic/scopegate/core"
	"github.com/poiesic/scopegate/docstore"
	"github.com/poiesic/scopegate/gateway"
)

// roleHeader carries the caller's role. Absent means HEAD_OF_SUPPORT,
// matching the demo's default persona.
const roleHeader = "X-Role"

const defaultSearchLimit = analysis.MaxResults

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// callerRole resolves the role header, defaulting when absent.
func callerRole(r *http.Request) (core.Role, error) {
	header := r.Header.Get(roleHeader)
	if header == "" {
		return core.RoleHeadOfSupport, nil
	}
	return core.ParseRole(header)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleQuery runs the full pipeline: one embedding, a scoped search and
// analysis per role, then the cross-role meta-analysis.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}

	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	roles := core.Roles
	if len(req.Roles) > 0 {
		roles = make([]core.Role, len(req.Roles))
		for i, name := range req.Roles {
			role, err := core.ParseRole(name)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, "Unknown role")
				return
			}
			roles[i] = role
		}
	}

	report, err := s.orchestrator.Run(r.Context(), req.Query, roles, nil)
	if err != nil {
		s.logger.Error("query pipeline failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to run query")
		return
	}

	rolePayloads := make([]queryRolePayload, len(report.Roles))
	for i, rr := range report.Roles {
		payload := queryRolePayload{
			Role:     string(rr.Role),
			Results:  toPayloads(rr.Results),
			AIAnswer: rr.Narrative,
		}
		if rr.AnalysisErr != nil {
			payload.Error = rr.AnalysisErr.Error()
		}
		if len(rr.SearchErrs) > 0 {
			payload.SearchErrors = make(map[string]string, len(rr.SearchErrs))
			for collection, searchErr := range rr.SearchErrs {
				payload.SearchErrors[string(collection)] = searchErr.Error()
			}
		}
		rolePayloads[i] = payload
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"query":        report.Query,
		"roles":        rolePayloads,
		"metaAnalysis": report.Meta,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	role, err := callerRole(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	collection, err := core.ParseCollection(req.Collection)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Unknown collection")
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	results, err := s.gateway.Search(r.Context(), role, collection, req.Vector, limit)
	if err != nil {
		s.logger.Error("search failed", "role", role, "collection", collection, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to perform search")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"results": toPayloads(results)})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	role, err := core.ParseRole(req.Role)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	narrative, err := s.analyzer.Analyze(r.Context(), req.Query, fromPayloads(req.Results), role)
	if err != nil {
		s.logger.Error("analysis failed", "role", role, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to analyze results")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"analysis": narrative})
}

func (s *Server) handleMetaAnalyze(w http.ResponseWriter, r *http.Request) {
	var req metaAnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	roleResults := make([]core.RoleResult, len(req.RoleResults))
	for i, rp := range req.RoleResults {
		role, err := core.ParseRole(rp.Role)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		roleResults[i] = core.RoleResult{
			Role:      role,
			Results:   fromPayloads(rp.Results),
			Narrative: rp.AIAnswer,
		}
	}

	narrative, err := s.meta.MetaAnalyze(r.Context(), req.Query, roleResults, core.RoleDescriptions)
	if err != nil {
		s.logger.Error("meta-analysis failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to perform meta-analysis")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"analysis": narrative})
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	var req embedRequest
	if !s.decode(w, r, &req) {
		return
	}

	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	vector, err := s.embedder.EmbedText(r.Context(), req.Text)
	if err != nil {
		s.logger.Error("embedding failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to generate embedding")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"vector": vector})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !s.decode(w, r, &req) {
		return
	}

	collection, err := core.ParseCollection(req.Collection)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Unknown collection")
		return
	}

	doc, err := s.docs.GetDocument(r.Context(), collection, req.ID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		s.logger.Error("document lookup failed", "collection", collection, "id", req.ID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.gateway.ListCollections(r.Context())
	if err != nil {
		s.logger.Error("listing collections failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch collections")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"collections": collections})
}

func (s *Server) handleCheckCollection(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("collection")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "Collection name is required")
		return
	}

	exists, err := s.gateway.CollectionExists(r.Context(), name)
	if err != nil {
		s.logger.Error("collection check failed", "collection", name, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to check collection")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if !s.decode(w, r, &req) {
		return
	}

	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "Collection name is required")
		return
	}

	size := req.Size
	if size == 0 {
		size = gateway.VectorSize
	}

	if err := s.gateway.CreateCollection(r.Context(), req.Name, size); err != nil {
		s.logger.Error("collection creation failed", "collection", req.Name, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to create collection")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Collection created successfully"})
}
