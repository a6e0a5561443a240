package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
// Si Responses tiene elementos se consumen en orden; al agotarse se repite Response.
// Errs se aplica por indice de llamada y tiene prioridad sobre la respuesta.
type MockClient struct {
	Response  string
	Err       error
	Responses []string
	Errs      []error
	// Handler, si esta definido, reemplaza todo lo anterior.
	Handler func(prompt string) (string, error)

	mu      sync.Mutex
	calls   int
	prompts []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	idx := m.calls
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Handler != nil {
		return m.Handler(prompt)
	}
	if idx < len(m.Errs) && m.Errs[idx] != nil {
		return "", m.Errs[idx]
	}
	if idx < len(m.Responses) {
		return m.Responses[idx], nil
	}
	return m.Response, m.Err
}

// Calls devuelve cuantas veces se invoco Generate.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Prompts devuelve una copia de los prompts recibidos.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// LastPrompt devuelve el ultimo prompt recibido o "".
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
