package hints

import (
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/vm/memory"
)

func memoryFelt(f felt.Felt) *memory.MaybeRelocatable {
	return memory.NewMaybeRelocatableFelt(f)
}

func memoryRelocatable(r memory.Relocatable) *memory.MaybeRelocatable {
	return memory.NewMaybeRelocatableRelocatable(r)
}
