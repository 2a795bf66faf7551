// Command cairo-hints-demo wires up a bare VirtualMachine, populates a
// single cell by hand, and runs the is_nn hint through
// CairoVmHintProcessor end to end. It is a smoke-test harness for the
// ambient stack, not a program loader or CLI (spec.md §1 scopes program
// loading out of this module).
package main

import (
	"log"

	"github.com/cairolang/hintvm/pkg/builtins"
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/cairolang/hintvm/pkg/vm/memory"
)

// fpRef builds a reference descriptor for a value living at [fp + offset].
func fpRef(offset int) hint_utils.HintReference {
	return hint_utils.HintReference{
		Offset1:     hint_utils.OffsetExpr{Register: hint_utils.FP, Immediate: offset},
		Dereference: true,
	}
}

func main() {
	log.Println("cairo-hints-demo: starting")

	v := vm.NewVirtualMachine()
	rc := builtins.NewRangeCheckBuiltinRunner()
	rc.InitializeSegments(&v.Segments)
	bound := rc.Bound()
	v.RangeCheck.Bound = &bound

	execSeg := v.Segments.AddSegment()
	v.RunContext.Fp = execSeg

	// ids.a = 10 at [fp+0].
	if err := v.Segments.Memory.Insert(execSeg, memory.NewMaybeRelocatableFelt(felt.FromUint64(10))); err != nil {
		log.Fatalf("seed memory: %v", err)
	}
	v.RunContext.Ap = execSeg.AddUint(1)

	processor := &hints.CairoVmHintProcessor{}
	scopes := types.NewExecutionScopes()
	constants := map[string]felt.Felt{}

	isNnData := hints.NewHintData(
		`memory[ap] = 0 if 0 <= (ids.a % PRIME) < range_check_builtin.bound else 1`,
		hint_utils.SymbolTable{"a": fpRef(0)},
		hint_utils.ApTracking{},
	)
	if err := processor.ExecuteHint(v, &isNnData, &constants, scopes); err != nil {
		log.Fatalf("is_nn: %v", err)
	}
	result, err := v.Segments.Memory.GetFelt(v.RunContext.Ap)
	if err != nil {
		log.Fatalf("read is_nn result: %v", err)
	}
	log.Printf("is_nn(10) = %s", result.ToHexString())

	log.Println("cairo-hints-demo: done")
}
