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


// Package ai provides abstractions for the AI services used by scopegate.
//
// This package defines interfaces for text embeddings and narrative
// completions. It follows the dependency inversion principle, allowing the
// gateway and analysis layers to depend on abstractions rather than concrete
// service clients.
//
// # Design Principles
//
// The package is designed around two key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Completer: Produces free-text completions from a prompt pair
//
// # Implementation Packages
//
//   - ai/openai: Embedder over OpenAI-compatible embedding APIs
//   - ai/ollama: Completer over Ollama's native generate API
//   - ai/mock: Test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder, ollama.NewCompleter) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockCompleter)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public methods (CallCount, function fields, Reset).
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithCompletionModel("deepseek-coder:6.7b"))
//	completer, err := ollama.NewCompleter(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := completer.Complete(ctx, systemPrompt, userPrompt, nil)
package ai
