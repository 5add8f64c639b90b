package lower

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

// lowerExpr lowers one typed expression to an operand usable immediately
// in the current block, emitting whatever statements/terminators/new
// blocks it needs along the way and advancing the cursor accordingly.
func (b *builder) lowerExpr(e *typedast.Expr) (mir.Operand, error) {
	switch k := e.Kind.(type) {
	case typedast.LiteralExpr:
		return mir.Constant{Type: e.Type, Value: k.Value}, nil

	case typedast.VarExpr:
		local, ok := b.lookup(k.Name)
		if !ok {
			return nil, undefinedVariable(b.fnName, k.Name)
		}
		return operandFor(mir.PlaceOf(local), e.Type), nil

	case typedast.BinaryExpr:
		x, err := b.lowerExpr(k.Left)
		if err != nil {
			return nil, err
		}
		y, err := b.lowerExpr(k.Right)
		if err != nil {
			return nil, err
		}
		return b.materialize(mir.BinaryOp{Op: k.Op, X: x, Y: y}, e.Type), nil

	case typedast.UnaryExpr:
		x, err := b.lowerExpr(k.Target)
		if err != nil {
			return nil, err
		}
		return b.materialize(mir.UnaryOp{Op: k.Op, X: x}, e.Type), nil

	case typedast.CallExpr:
		return b.lowerCall(k, e.Type)

	case typedast.FieldExpr:
		place, err := b.lowerPlace(e)
		if err != nil {
			return nil, err
		}
		return operandFor(place, e.Type), nil

	case typedast.IndexExpr:
		place, err := b.lowerPlace(e)
		if err != nil {
			return nil, err
		}
		return operandFor(place, e.Type), nil

	case typedast.StructLitExpr:
		return b.lowerStructLit(k, e.Type)

	case typedast.ArrayLitExpr:
		elems := make([]mir.Operand, len(k.Elems))
		for i, el := range k.Elems {
			op, err := b.lowerExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = op
		}
		return b.materialize(mir.Aggregate{Kind: mir.AggregateArray, Elems: elems}, e.Type), nil

	case typedast.TupleLitExpr:
		elems := make([]mir.Operand, len(k.Elems))
		for i, el := range k.Elems {
			op, err := b.lowerExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = op
		}
		return b.materialize(mir.Aggregate{Kind: mir.AggregateTuple, Elems: elems}, e.Type), nil

	case typedast.IfExpr:
		return b.lowerIf(k, e.Type)

	case typedast.BlockExpr:
		return b.lowerBlock(k, e.Type)

	case typedast.MatchExpr:
		return b.lowerMatch(k, e.Type)

	case typedast.PerformExpr:
		return b.lowerPerform(k, e.Type)

	case typedast.HandleExpr:
		return b.lowerHandle(k, e.Type)

	case typedast.RefExpr:
		place, err := b.lowerPlace(k.Target)
		if err != nil {
			return nil, err
		}
		if k.Mutable {
			return b.materialize(mir.RefMutOf{Place: place}, e.Type), nil
		}
		return b.materialize(mir.RefOf{Place: place}, e.Type), nil

	case typedast.DerefExpr:
		place, err := b.lowerPlace(k.Target)
		if err != nil {
			return nil, err
		}
		return operandFor(place.Project(mir.DerefElem()), e.Type), nil

	case typedast.CastExpr:
		x, err := b.lowerExpr(k.Target)
		if err != nil {
			return nil, err
		}
		return b.materialize(mir.Cast{Kind: castKindFor(k.Target.Type, k.To), Operand: x, To: k.To}, e.Type), nil

	case typedast.SpawnExpr:
		return b.lowerSpawn(k, e.Type)

	case typedast.JoinExpr:
		return b.lowerJoin(k, e.Type)

	default:
		return nil, internalErr(b.fnName, "unhandled expression kind in lowering")
	}
}

// lowerPlace lowers an addressable expression (var, field, index, deref)
// to a Place. Anything else is first materialized into a temp local, so
// RefOf/FieldExpr-on-a-call-result etc. still work.
func (b *builder) lowerPlace(e *typedast.Expr) (mir.Place, error) {
	switch k := e.Kind.(type) {
	case typedast.VarExpr:
		local, ok := b.lookup(k.Name)
		if !ok {
			return mir.Place{}, undefinedVariable(b.fnName, k.Name)
		}
		return mir.PlaceOf(local), nil

	case typedast.FieldExpr:
		base, err := b.lowerPlace(k.Base)
		if err != nil {
			return mir.Place{}, err
		}
		idx, err := b.ctx.fieldIndex(k.Base.Type, k.Field, b.fnName)
		if err != nil {
			return mir.Place{}, err
		}
		return base.Project(mir.FieldElem(idx)), nil

	case typedast.IndexExpr:
		base, err := b.lowerPlace(k.Base)
		if err != nil {
			return mir.Place{}, err
		}
		idxOp, err := b.lowerExpr(k.Index)
		if err != nil {
			return mir.Place{}, err
		}
		idxLocal := b.newTemp(k.Index.Type)
		b.emit(mir.Assign{Place: mir.PlaceOf(idxLocal), RHS: mir.Use{Operand: idxOp}})
		return base.Project(mir.IndexElem(idxLocal)), nil

	case typedast.DerefExpr:
		base, err := b.lowerPlace(k.Target)
		if err != nil {
			return mir.Place{}, err
		}
		return base.Project(mir.DerefElem()), nil

	default:
		op, err := b.lowerExpr(e)
		if err != nil {
			return mir.Place{}, err
		}
		temp := b.newTemp(e.Type)
		b.emit(mir.Assign{Place: mir.PlaceOf(temp), RHS: mir.Use{Operand: op}})
		return mir.PlaceOf(temp), nil
	}
}

func (c *Context) fieldIndex(structTy mir.Type, name, fnName string) (uint32, error) {
	def := c.program.StructByID(structTy.StructID)
	if def == nil {
		return 0, undefinedType(fnName, "<struct>")
	}
	for i, f := range def.Fields {
		if f.Name == name {
			return uint32(i), nil
		}
	}
	return 0, undefinedField(fnName, def.Name, name)
}

func (b *builder) lowerCall(k typedast.CallExpr, resultTy mir.Type) (mir.Operand, error) {
	funcID, ok := b.ctx.funcIDByName[k.Callee]
	if !ok {
		return nil, undefinedFunction(b.fnName, k.Callee)
	}
	args := make([]mir.Operand, len(k.Args))
	for i, a := range k.Args {
		op, err := b.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = op
	}

	next := b.newBlock()
	var dest *mir.Place
	if resultTy.Kind != mir.KindUnit {
		temp := b.newTemp(resultTy)
		p := mir.PlaceOf(temp)
		dest = &p
	}
	target := next
	b.block().Terminator = mir.Call{FuncID: funcID, Args: args, Dest: dest, Target: &target}
	b.cur = next

	if dest == nil {
		return mir.Constant{Type: mir.Unit(), Value: nil}, nil
	}
	return operandFor(*dest, resultTy), nil
}

func (b *builder) lowerStructLit(k typedast.StructLitExpr, ty mir.Type) (mir.Operand, error) {
	def := b.ctx.program.StructByID(ty.StructID)
	if def == nil {
		return nil, undefinedType(b.fnName, k.StructName)
	}
	elems := make([]mir.Operand, len(def.Fields))
	for _, init := range k.Fields {
		idx, err := b.ctx.fieldIndex(ty, init.Name, b.fnName)
		if err != nil {
			return nil, err
		}
		op, err := b.lowerExpr(init.Value)
		if err != nil {
			return nil, err
		}
		elems[idx] = op
	}
	return b.materialize(mir.Aggregate{Kind: mir.AggregateStruct, Elems: elems, StructID: ty.StructID}, ty), nil
}

func (b *builder) lowerIf(k typedast.IfExpr, resultTy mir.Type) (mir.Operand, error) {
	cond, err := b.lowerExpr(k.Cond)
	if err != nil {
		return nil, err
	}
	thenBlock, elseBlock, joinBlock := b.newBlock(), b.newBlock(), b.newBlock()
	b.block().Terminator = mir.SwitchInt{
		Discriminant: cond,
		Cases:        []mir.SwitchCase{{Value: 1, Target: thenBlock}},
		Otherwise:    elseBlock,
	}

	var resultLocal *mir.LocalID
	if resultTy.Kind != mir.KindUnit {
		id := b.newTemp(resultTy)
		resultLocal = &id
	}

	b.cur = thenBlock
	thenVal, err := b.lowerExpr(k.Then)
	if err != nil {
		return nil, err
	}
	if resultLocal != nil {
		b.emit(mir.Assign{Place: mir.PlaceOf(*resultLocal), RHS: mir.Use{Operand: thenVal}})
	}
	b.gotoAndMove(joinBlock)
	thenEnd := b.cur
	b.cur = elseBlock

	if k.Else != nil {
		elseVal, err := b.lowerExpr(k.Else)
		if err != nil {
			return nil, err
		}
		if resultLocal != nil {
			b.emit(mir.Assign{Place: mir.PlaceOf(*resultLocal), RHS: mir.Use{Operand: elseVal}})
		}
	}
	b.block().Terminator = mir.Goto{Target: joinBlock}
	_ = thenEnd
	b.cur = joinBlock

	if resultLocal == nil {
		return mir.Constant{Type: mir.Unit(), Value: nil}, nil
	}
	return operandFor(mir.PlaceOf(*resultLocal), resultTy), nil
}

func (b *builder) lowerBlock(k typedast.BlockExpr, resultTy mir.Type) (mir.Operand, error) {
	b.pushScope()
	defer b.popScope()
	for _, s := range k.Stmts {
		if err := b.lowerStmt(s); err != nil {
			return nil, err
		}
	}
	if k.Tail != nil {
		return b.lowerExpr(k.Tail)
	}
	return mir.Constant{Type: mir.Unit(), Value: nil}, nil
}

func castKindFor(from, to mir.Type) mir.CastKind {
	fromFloat := from.Kind == mir.KindFloat || from.Kind == mir.KindFloat32 || from.Kind == mir.KindFloat64
	toFloat := to.Kind == mir.KindFloat || to.Kind == mir.KindFloat32 || to.Kind == mir.KindFloat64
	switch {
	case to.Kind == mir.KindBool:
		return mir.CastIntToBool
	case fromFloat && !toFloat:
		return mir.CastFloatToInt
	case !fromFloat && toFloat:
		return mir.CastIntToFloat
	case fromFloat && toFloat:
		return mir.CastFloatToFloat
	default:
		return mir.CastIntToInt
	}
}
