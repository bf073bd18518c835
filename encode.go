package pgf

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodePGF serializes a grammar back into the binary format read by
// DecodePGF. It exists so the load/store round trip (spec.md §8 Invariant
// 1) is actually testable without a fixture file on disk; it is not a
// grammar compiler (spec.md Non-goals).
func EncodePGF(g *Pgf) ([]byte, error) {
	if err := validate(g); err != nil {
		return nil, err
	}

	e := &encoder{buf: &bytes.Buffer{}}
	e.writeU16(supportedMajorVersion)
	e.writeU16(supportedGrammarCount)
	if err := e.writeStringLong(string(g.AbsName)); err != nil {
		return nil, err
	}
	if err := e.writeFlags(g.Flags, g.FlagOrder); err != nil {
		return nil, err
	}
	if err := e.writeAbstract(&g.Abstract); err != nil {
		return nil, err
	}
	if err := e.writeConcretes(g); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// encoder is the buffer-then-write counterpart to decoder: every write
// helper appends to an in-memory buffer that is only materialized once, at
// the end of EncodePGF.
type encoder struct {
	buf *bytes.Buffer
}

func (e *encoder) writeU8(b byte) {
	e.buf.WriteByte(b)
}

func (e *encoder) writeU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeI32(v int32) {
	e.writeU32(uint32(v))
}

func (e *encoder) writeF32(v float32) {
	e.writeU32(math.Float32bits(v))
}

func (e *encoder) writeF64(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf.Write(b[:])
}

func (e *encoder) writeStringShort(s string) error {
	if len(s) > 0xff {
		return serializeErr("string %q exceeds string-short max length 255", s)
	}
	e.writeU8(byte(len(s)))
	e.buf.WriteString(s)
	return nil
}

func (e *encoder) writeStringLong(s string) error {
	if len(s) > 0xffff {
		return serializeErr("string %q exceeds string-long max length 65535", s)
	}
	e.writeU16(uint16(len(s)))
	e.buf.WriteString(s)
	return nil
}

func (e *encoder) writeLiteral(l Literal) error {
	switch l.Kind {
	case LiteralStr:
		e.writeU8(0)
		return e.writeStringShort(l.Str)
	case LiteralInt:
		e.writeU8(1)
		e.writeI32(l.Int)
		return nil
	case LiteralFloat:
		e.writeU8(2)
		e.writeF64(l.Float)
		return nil
	default:
		return serializeErr("unknown literal kind %d", l.Kind)
	}
}

func (e *encoder) writeFlags(flags map[CID]Literal, order []CID) error {
	if len(order) > 0xffff {
		return serializeErr("flag table exceeds u16 count limit")
	}
	e.writeU16(uint16(len(order)))
	for _, key := range order {
		if err := e.writeStringShort(string(key)); err != nil {
			return err
		}
		if err := e.writeLiteral(flags[key]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeBinding(b Binding) error {
	switch b.Kind {
	case BindExplicit:
		e.writeU8(0)
	case BindImplicit:
		e.writeU8(1)
	default:
		return serializeErr("unknown binding kind %d", b.Kind)
	}
	return e.writeStringShort(string(b.Var))
}

func (e *encoder) writeType(t Type) error {
	e.writeU32(uint32(len(t.Hypos)))
	for _, h := range t.Hypos {
		if err := e.writeHypo(h); err != nil {
			return err
		}
	}
	if err := e.writeStringShort(string(t.Cat)); err != nil {
		return err
	}
	e.writeU32(uint32(len(t.Exprs)))
	for _, ex := range t.Exprs {
		if err := e.writeExpr(ex); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeHypo(h Hypo) error {
	if err := e.writeBinding(h.Binding); err != nil {
		return err
	}
	return e.writeType(h.Type)
}

func (e *encoder) writeExpr(expr Expr) error {
	switch ex := expr.(type) {
	case ExprAbs:
		e.writeU8(0)
		if err := e.writeBinding(ex.Binding); err != nil {
			return err
		}
		if err := e.writeStringShort(string(ex.Var)); err != nil {
			return err
		}
		return e.writeExpr(ex.Body)
	case ExprApp:
		e.writeU8(1)
		if err := e.writeExpr(ex.Fn); err != nil {
			return err
		}
		return e.writeExpr(ex.Arg)
	case ExprFun:
		e.writeU8(2)
		return e.writeStringShort(string(ex.Name))
	case ExprStr:
		e.writeU8(3)
		return e.writeStringShort(ex.Value)
	case ExprInt:
		e.writeU8(4)
		e.writeI32(ex.Value)
		return nil
	case ExprFloat:
		e.writeU8(5)
		e.writeF32(ex.Value)
		return nil
	case ExprDouble:
		e.writeU8(6)
		e.writeF64(ex.Value)
		return nil
	case ExprMeta:
		e.writeU8(7)
		return nil
	case ExprTyped:
		e.writeU8(8)
		if err := e.writeExpr(ex.Expr); err != nil {
			return err
		}
		return e.writeType(ex.Type)
	case ExprImplArg:
		e.writeU8(9)
		return e.writeExpr(ex.Expr)
	default:
		return serializeErr("unknown expr type %T", expr)
	}
}

func (e *encoder) writePattern(p Pattern) error {
	switch p.Kind {
	case PatVar:
		e.writeU8(0)
		return e.writeStringShort(string(p.Var))
	case PatApp:
		e.writeU8(1)
		if err := e.writeStringShort(string(p.Fun)); err != nil {
			return err
		}
		e.writeU32(uint32(len(p.Args)))
		for _, a := range p.Args {
			if err := e.writePattern(a); err != nil {
				return err
			}
		}
		return nil
	default:
		return serializeErr("unknown pattern kind %d", p.Kind)
	}
}

func (e *encoder) writeEquationSet(eqs *EquationSet) error {
	if eqs == nil {
		e.writeU8(0)
		return nil
	}
	e.writeU8(1)
	e.writeU32(uint32(len(eqs.Equations)))
	for _, eq := range eqs.Equations {
		e.writeU32(uint32(len(eq.Patterns)))
		for _, p := range eq.Patterns {
			if err := e.writePattern(p); err != nil {
				return err
			}
		}
		if err := e.writeExpr(eq.Result); err != nil {
			return err
		}
	}
	e.writeU32(uint32(len(eqs.Instructions)))
	for _, instrs := range eqs.Instructions {
		e.writeU32(uint32(len(instrs)))
		for _, ins := range instrs {
			e.writeU32(uint32(len(ins.Opaque)))
			e.buf.Write(ins.Opaque)
		}
	}
	return nil
}

// writeAbstract writes only the function table: categories are derived by
// the reader from the functions' result types, so no category data is
// written (mirrors readAbstract's ordering, spec.md §4C).
func (e *encoder) writeAbstract(a *Abstract) error {
	e.writeU32(uint32(len(a.FunOrder)))
	for _, name := range a.FunOrder {
		fn := a.Funs[name]
		if err := e.writeStringShort(string(fn.Name)); err != nil {
			return err
		}
		if err := e.writeType(fn.Type); err != nil {
			return err
		}
		e.writeI32(fn.Weight)
		e.writeF64(fn.Prob)
		if err := e.writeEquationSet(fn.Equations); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeConcretes(g *Pgf) error {
	e.writeU32(uint32(len(g.LangOrder)))
	for _, lang := range g.LangOrder {
		if err := e.writeStringShort(string(lang)); err != nil {
			return err
		}
		if err := e.writeConcrete(g.Concretes[lang]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeConcrete(cnc *Concrete) error {
	if err := e.writeFlags(cnc.Flags, cnc.FlagOrder); err != nil {
		return err
	}
	if err := e.writeProductions(cnc); err != nil {
		return err
	}
	if err := e.writeCncFuns(cnc.CncFuns); err != nil {
		return err
	}
	if err := e.writeSequences(cnc.Sequences); err != nil {
		return err
	}
	if err := e.writeCncCats(cnc.CncCats, cnc.CncCatOrder); err != nil {
		return err
	}
	e.writeI32(cnc.TotalCats)
	return nil
}

// writeProductions writes productions in ascending fid order so EncodePGF
// is deterministic run to run (map iteration order is not).
func (e *encoder) writeProductions(cnc *Concrete) error {
	fids := sortedFids(cnc.Productions)
	e.writeU32(uint32(len(fids)))
	for _, fid := range fids {
		e.writeI32(fid)
		set := cnc.Productions[fid]
		e.writeU32(uint32(len(set)))
		for _, p := range set {
			if err := e.writeProduction(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedFids(m map[int32][]Production) []int32 {
	fids := make([]int32, 0, len(m))
	for fid := range m {
		fids = append(fids, fid)
	}
	for i := 1; i < len(fids); i++ {
		for j := i; j > 0 && fids[j-1] > fids[j]; j-- {
			fids[j-1], fids[j] = fids[j], fids[j-1]
		}
	}
	return fids
}

func (e *encoder) writeProduction(p Production) error {
	switch prod := p.(type) {
	case Apply:
		e.writeU8(0)
		e.writeI32(prod.Fid)
		e.writeU32(uint32(len(prod.Args)))
		for _, a := range prod.Args {
			e.writeU32(uint32(len(a.Hypos)))
			for _, h := range a.Hypos {
				e.writeI32(h)
			}
			e.writeI32(a.Fid)
		}
		return nil
	case Coerce:
		e.writeU8(1)
		e.writeI32(prod.Arg)
		return nil
	default:
		return serializeErr("unknown production type %T", p)
	}
}

func (e *encoder) writeCncFuns(cncfuns []CncFun) error {
	e.writeU32(uint32(len(cncfuns)))
	for _, cf := range cncfuns {
		if err := e.writeStringShort(string(cf.Name)); err != nil {
			return err
		}
		e.writeU32(uint32(len(cf.Lins)))
		for _, lin := range cf.Lins {
			e.writeI32(lin)
		}
	}
	return nil
}

func (e *encoder) writeSequences(sequences [][]Symbol) error {
	e.writeU32(uint32(len(sequences)))
	for _, seq := range sequences {
		e.writeU32(uint32(len(seq)))
		for _, s := range seq {
			if err := e.writeSymbol(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) writeSymbol(s Symbol) error {
	switch sym := s.(type) {
	case SymCat:
		e.writeU8(0)
		e.writeI32(sym.D)
		e.writeI32(sym.R)
		return nil
	case SymLit:
		e.writeU8(1)
		e.writeI32(sym.D)
		e.writeI32(sym.R)
		return nil
	case SymVar:
		e.writeU8(2)
		e.writeI32(sym.D)
		e.writeI32(sym.R)
		return nil
	case SymKS:
		e.writeU8(3)
		return e.writeStringShort(sym.Token)
	case SymKP:
		e.writeU8(4)
		e.writeU32(uint32(len(sym.Default)))
		for _, d := range sym.Default {
			if err := e.writeSymbol(d); err != nil {
				return err
			}
		}
		e.writeU32(uint32(len(sym.Alts)))
		for _, a := range sym.Alts {
			if err := e.writeAlt(a); err != nil {
				return err
			}
		}
		return nil
	case SymNE:
		e.writeU8(5)
		return nil
	default:
		return serializeErr("unknown symbol type %T", s)
	}
}

func (e *encoder) writeAlt(a Alt) error {
	e.writeU32(uint32(len(a.Symbols)))
	for _, s := range a.Symbols {
		if err := e.writeSymbol(s); err != nil {
			return err
		}
	}
	e.writeU32(uint32(len(a.Tokens)))
	for _, t := range a.Tokens {
		if err := e.writeStringShort(t); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeCncCats(cnccats map[CID]CncCat, order []CID) error {
	e.writeU32(uint32(len(order)))
	for _, name := range order {
		if err := e.writeStringShort(string(name)); err != nil {
			return err
		}
		rng := cnccats[name]
		e.writeI32(rng.Start)
		e.writeI32(rng.End)
	}
	return nil
}
