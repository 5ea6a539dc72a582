package analyze

import (
	"errors"
	"fmt"
	"go/types"
)

// ValueRefPath is the qualified name of the value handed to extract functions.
const ValueRefPath = "rowcaster/sqlrow.ValueRef"

var errType = types.Universe.Lookup("error").Type()

// CheckBind verifies that sig has the shape func(T) (driver.Value, error)
// for the field type t. Any empty interface is accepted as the first result.
func CheckBind(sig *types.Signature, t types.Type) error {
	if sig.TypeParams().Len() > 0 {
		return errors.New("bind function must not be generic")
	}

	if sig.Params().Len() != 1 || sig.Variadic() {
		return fmt.Errorf("bind function takes %d parameters, want 1", sig.Params().Len())
	}

	if p := sig.Params().At(0).Type(); !types.AssignableTo(t, p) {
		return fmt.Errorf("bind function accepts %s, field is %s", p, t)
	}

	if err := checkResults(sig); err != nil {
		return err
	}

	if !isEmptyInterface(sig.Results().At(0).Type()) {
		return fmt.Errorf("bind function returns %s, want driver.Value", sig.Results().At(0).Type())
	}

	return nil
}

// CheckExtract verifies that sig has the shape
// func(sqlrow.ValueRef) (T, error) for the field type t.
func CheckExtract(sig *types.Signature, t types.Type) error {
	if sig.TypeParams().Len() > 0 {
		return errors.New("extract function must not be generic")
	}

	if sig.Params().Len() != 1 || sig.Variadic() {
		return fmt.Errorf("extract function takes %d parameters, want 1", sig.Params().Len())
	}

	if p := sig.Params().At(0).Type(); !isValueRef(p) {
		return fmt.Errorf("extract function accepts %s, want sqlrow.ValueRef", p)
	}

	if err := checkResults(sig); err != nil {
		return err
	}

	if r := sig.Results().At(0).Type(); !types.Identical(r, t) {
		return fmt.Errorf("extract function returns %s, field is %s", r, t)
	}

	return nil
}

func checkResults(sig *types.Signature) error {
	if sig.Results().Len() != 2 {
		return fmt.Errorf("function returns %d values, want 2", sig.Results().Len())
	}

	if !types.Identical(sig.Results().At(1).Type(), errType) {
		return fmt.Errorf("second result is %s, want error", sig.Results().At(1).Type())
	}

	return nil
}

func isEmptyInterface(t types.Type) bool {
	it, ok := t.Underlying().(*types.Interface)
	return ok && it.Empty()
}

func isValueRef(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}

	return named.Obj().Pkg().Path()+"."+named.Obj().Name() == ValueRefPath
}
