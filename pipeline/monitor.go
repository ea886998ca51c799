package pipeline

import "github.com/poiesic/scopegate/core"

// Monitor provides hooks to observe the pipeline as each stage completes.
// Search results for a role are surfaced as soon as that role's searches
// join, independent of whether any analysis has started. Implement this
// interface to stream partial results to an observer.
type Monitor interface {
	Start(query string)
	QueryEmbedded(dimensions int)
	RoleSearched(role core.Role, results []core.SearchResult, errs map[core.Collection]error)
	RoleAnalyzed(role core.Role, narrative string, err error)
	MetaAnalyzed(narrative string, err error)
	Finish(report *Report)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)      {}
func (n *noopMonitor) QueryEmbedded(_ int) {}
func (n *noopMonitor) RoleSearched(_ core.Role, _ []core.SearchResult, _ map[core.Collection]error) {
}
func (n *noopMonitor) RoleAnalyzed(_ core.Role, _ string, _ error) {}
func (n *noopMonitor) MetaAnalyzed(_ string, _ error)              {}
func (n *noopMonitor) Finish(_ *Report)                            {}
