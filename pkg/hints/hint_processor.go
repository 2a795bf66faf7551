// Package hints implements the hint catalog and dispatcher (spec.md §4.6
// "Hint catalog and dispatcher") together with every hint handler family
// (spec.md §4.4-4.10).
package hints

import (
	"github.com/cairolang/hintvm/pkg/felt"
	. "github.com/cairolang/hintvm/pkg/hints/hint_codes"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/pkg/errors"
)

// HintData is what NewHintData builds for the VM: the hint's own
// opaque dispatch key (its Python source, verbatim) paired with the
// resolver scoped to its symbol table (spec.md §6 "Hint catalog
// surface").
type HintData struct {
	Ids  hint_utils.IdsManager
	Code string
}

// NewHintData builds a HintData from a hint's compiled symbol table and
// AP-tracking snapshot; the caller (the VM's program loader, out of this
// module's scope per spec.md §1) is responsible for having parsed those
// out of the on-disk program representation.
func NewHintData(code string, references hint_utils.SymbolTable, apTracking hint_utils.ApTracking) HintData {
	return HintData{Ids: hint_utils.NewIdsManager(references, apTracking), Code: code}
}

// CairoVmHintProcessor dispatches a compiled hint's code string to its
// handler (spec.md §4.6 "Maps a hint's textual source code to a
// handler; invokes the handler with a uniform context").
type CairoVmHintProcessor struct{}

func (p *CairoVmHintProcessor) ExecuteHint(v *vm.VirtualMachine, data *HintData, constants *map[string]felt.Felt, scopes *types.ExecutionScopes) error {
	ids := &data.Ids
	switch data.Code {
	// Comparison & range
	case IS_NN:
		return isNn(ids, v)
	case IS_NN_OUT_OF_RANGE:
		return isNnOutOfRange(ids, v)
	case ASSERT_LE_FELT_V06:
		return assertLeFeltV06(ids, v)
	case ASSERT_LE_FELT_V08:
		return assertLeFeltV08(ids, v)
	case ASSERT_NOT_EQUAL:
		return assertNotEqual(ids, v)
	case ASSERT_NOT_ZERO:
		return assertNotZero(ids, v)
	case IS_POSITIVE:
		return isPositive(ids, v)
	case IS_250_BITS:
		return is250Bits(ids, v)
	case IS_ADDR_BOUNDED:
		return isAddrBounded(ids, v, constants)
	case SPLIT_INT, SPLIT_INT_ASSERT_LEN:
		return splitInt(ids, v)
	case SPLIT_XX:
		return splitXX(ids, v)
	case IS_QUAD_RESIDUE:
		return isQuadResidue(ids, v)

	// Uint256 (generalized into the Uint384/768 family below)
	case UINT256_ADD:
		return uint256Add(ids, v, constants)
	case UINT256_ADD_LOW:
		return uint256AddLow(ids, v, constants)

	// BigInt3/5
	case BIGINT_PACK_DIV_MOD:
		return bigintPackDivMod(ids, scopes, v)
	case BIGINT_SAFE_DIV:
		return bigintSafeDiv(ids, scopes, v)

	// Uint384/768
	case UINT384_UNSIGNED_DIV_REM:
		return uint384UnsignedDivRem(ids, v)
	case UINT768_BY_UINT384_UNSIGNED_DIV_REM:
		return uint768ByUint384UnsignedDivRem(ids, v)
	case UINT384_SPLIT_128:
		return uint384Split128(ids, v)
	case ADD_NO_UINT384_CHECK:
		return addNoUint384Check(ids, v, constants)
	case UINT384_SQRT:
		return uint384Sqrt(ids, v)
	case UINT384_SIGNED_NN:
		return uint384SignedNn(ids, v)
	case SUB_REDUCED_A_AND_REDUCED_B:
		return subReducedAAndReducedB(ids, v)

	// Elliptic curve
	case RECOVER_Y:
		return recoverY(ids, v)
	case RANDOM_EC_POINT_SEEDED:
		return randomEcPointSeeded(ids, v)
	case RANDOM_EC_POINT:
		return randomEcPoint(ids, v)
	case CHAINED_EC_OP_RANDOM_EC_POINT:
		return chainedEcOpRandomEcPoint(ids, v)

	// Hashing
	case BLAKE2S_COMPRESS:
		return blake2sCompress(ids, v)
	case SHA256_INPUT:
		return sha256Input(ids, v)
	case SHA256_MAIN_CONSTANT_INPUT_LENGTH:
		return sha256MainConstantInputLength(ids, v, constants)
	case SHA256_MAIN_ARBITRARY_INPUT_LENGTH:
		return sha256MainArbitraryInputLength(ids, v, constants)
	case KECCAK_WRITE_ARGS:
		return keccakWriteArgs(ids, v)
	case BLOCK_PERMUTATION_V1:
		return blockPermutationV1(ids, v, constants)
	case BLOCK_PERMUTATION_V2:
		return blockPermutationV2(ids, v, constants)
	case CAIRO_KECCAK_FINALIZE_V1:
		return cairoKeccakFinalizeV1(ids, v, constants)
	case CAIRO_KECCAK_FINALIZE_V2:
		return cairoKeccakFinalizeV2(ids, v, constants)
	case UNSAFE_KECCAK:
		return unsafeKeccak(ids, scopes, v)
	case UNSAFE_KECCAK_FINALIZE:
		return unsafeKeccakFinalize(ids, v)

	// Sort / set
	case USORT_BODY:
		return usortBody(ids, scopes, v)
	case USORT_VERIFY:
		return usortVerify(ids, scopes, v)
	case USORT_VERIFY_MULTIPLICITY_BODY:
		return usortVerifyMultiplicityBody(ids, scopes, v)
	case USORT_VERIFY_MULTIPLICITY_ASSERT:
		return usortVerifyMultiplicityAssert(scopes)
	case SET_ADD:
		return setAdd(ids, v)

	// Dictionary
	case DICT_NEW:
		return dictNew(ids, scopes, v)
	case DEFAULT_DICT_NEW:
		return defaultDictNew(ids, scopes, v)
	case DICT_READ:
		return dictRead(ids, scopes, v)
	case DICT_WRITE:
		return dictWrite(ids, scopes, v)
	case DICT_UPDATE:
		return dictUpdate(ids, scopes, v)
	case SQUASH_DICT:
		return squashDict(ids, scopes, v)

	// Loop scaffolding
	case MEMSET_ENTER_SCOPE:
		return memsetEnterScope(ids, scopes, v)
	case MEMCPY_ENTER_SCOPE:
		return memcpyEnterScope(ids, scopes, v)
	case MEMSET_CONTINUE_LOOP:
		return memsetContinueLoop(ids, scopes, v)
	case MEMCPY_CONTINUE_COPYING:
		return memcpyContinueCopying(ids, scopes, v)
	case NONDET_N_GREATER_THAN_10:
		return nondetNGreaterThan(ids, v, 10)
	case NONDET_N_GREATER_THAN_2:
		return nondetNGreaterThan(ids, v, 2)
	case ELEMENTS_OVER_X:
		return elementsOverX(ids, v)

	default:
		return errors.Errorf("unknown hint code: %.60q", data.Code)
	}
}
