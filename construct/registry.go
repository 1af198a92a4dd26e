package construct

import (
	"sync"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/customresources"
)

const (
	handlerID  = "SecureStringParameterCustomResourceHandler"
	providerID = "SecureStringParameterCustomResourceProvider"
)

// stackSingletons são os recursos compartilhados por todos os parâmetros de uma stack.
type stackSingletons struct {
	stack    awscdk.Stack
	handler  awslambda.Function
	provider customresources.Provider
}

// registry guarda um stackSingletons por stack, indexado pelo endereço do nó.
type registry struct {
	mu      sync.Mutex
	entries map[string]*stackSingletons
}

var singletons = &registry{entries: make(map[string]*stackSingletons)}

// lookupOrInsert devolve os singletons da stack, criando-os na primeira chamada.
// Stacks de apps diferentes podem ter o mesmo endereço; a identidade da stack
// desempata.
func (r *registry) lookupOrInsert(stack awscdk.Stack, create func(stack awscdk.Stack) *stackSingletons) *stackSingletons {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr := *stack.Node().Addr()
	if e, ok := r.entries[addr]; ok && e.stack == stack {
		return e
	}
	e := create(stack)
	r.entries[addr] = e
	return e
}
