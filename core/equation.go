package core

// NewEquation constructs an Equation over vars with the given residual
// function. Returns ErrNilResidual if residual is nil. The equation is
// attached to each variable's incidence sets as a side effect.
// Complexity: O(len(vars)).
func NewEquation(name string, residual func(args ...float64) float64, vars []*Variable, parent interface{}) (*Equation, error) {
	if residual == nil {
		return nil, ErrNilResidual
	}

	varList := make([]*Variable, len(vars))
	copy(varList, vars)

	e := &Equation{
		seq:      nextEqnSeq(),
		Name:     name,
		Parent:   parent,
		Residual: residual,
		VarList:  varList,
		vars:     make(map[*Variable]struct{}, len(vars)),
		allVars:  make(map[*Variable]struct{}, len(vars)),
	}

	for _, v := range varList {
		e.vars[v] = struct{}{}
		e.allVars[v] = struct{}{}
		v.attach(e)
	}

	return e, nil
}

// Evaluate plugs the current values of VarList, in order, into Residual
// and returns the resulting scalar residual.
func (e *Equation) Evaluate() float64 {
	args := make([]float64, len(e.VarList))
	for i, v := range e.VarList {
		args[i] = v.Value()
	}
	return e.Residual(args...)
}

// IsSatisfied reports whether the absolute residual is below tol.
func (e *Equation) IsSatisfied(tol float64) bool {
	r := e.Evaluate()
	return r < tol && r > -tol
}

// ActiveVars returns the variables this equation still reads that have not
// been claimed by another committed block during the current decomposition.
func (e *Equation) ActiveVars() map[*Variable]struct{} {
	return e.vars
}

// AllVars returns every variable this equation was constructed with.
func (e *Equation) AllVars() map[*Variable]struct{} {
	return e.allVars
}

// InBlock reports the block currently containing this equation, or nil.
func (e *Equation) InBlock() *Block {
	return e.inBlock
}

// reset restores e to its just-constructed search state.
func (e *Equation) reset() {
	e.vars = make(map[*Variable]struct{}, len(e.allVars))
	for v := range e.allVars {
		e.vars[v] = struct{}{}
	}
	e.inBlock = nil
}

// delete detaches e from every variable it references. After delete, e
// must not be reused.
func (e *Equation) delete() {
	for v := range e.allVars {
		v.detach(e)
	}
	e.vars = map[*Variable]struct{}{}
	e.allVars = map[*Variable]struct{}{}
}

// ResetEquation restores e to its just-constructed search state.
func ResetEquation(e *Equation) {
	e.reset()
}

// DeleteEquation detaches e from every variable it references. After
// DeleteEquation, e must not be reused.
func DeleteEquation(e *Equation) {
	e.delete()
}
