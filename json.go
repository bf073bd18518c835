package pgf

import (
	"bytes"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PgfToJSON renders g as the stable JSON projection documented in spec.md
// §6: a deterministic debugging/round-trip view, never the grammar's
// runtime representation. encoding/json sorts map[string]interface{} keys
// alphabetically on marshal, which is what gives this projection its
// determinism without any bookkeeping here.
func PgfToJSON(g *Pgf) ([]byte, error) {
	abstract := map[string]interface{}{
		"name":     string(g.AbsName),
		"startcat": string(g.StartCat),
		"funs":     abstractFunsJSON(&g.Abstract),
	}

	concretes := make(map[string]interface{}, len(g.LangOrder))
	for _, lang := range g.LangOrder {
		concretes[string(lang)] = concreteJSON(g.Concretes[lang])
	}

	out := map[string]interface{}{"abstract": abstract, "concretes": concretes}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, serializeErr("marshal: %v", err)
	}
	if err := validateProjectionShape(data); err != nil {
		return nil, serializeErr("projection failed self-validation: %v", err)
	}
	return data, nil
}

func abstractFunsJSON(a *Abstract) map[string]interface{} {
	out := make(map[string]interface{}, len(a.FunOrder))
	for _, name := range a.FunOrder {
		fn := a.Funs[name]
		args := make([]string, len(fn.Type.Hypos))
		for i, h := range fn.Type.Hypos {
			args[i] = string(h.Type.Cat)
		}
		out[string(name)] = map[string]interface{}{"args": args, "cat": string(fn.Type.Cat)}
	}
	return out
}

func concreteJSON(cnc *Concrete) map[string]interface{} {
	flags := make(map[string]interface{}, len(cnc.FlagOrder))
	for _, key := range cnc.FlagOrder {
		flags[string(key)] = literalJSON(cnc.Flags[key])
	}

	productions := make(map[string]interface{}, len(cnc.Productions))
	for fid, prods := range cnc.Productions {
		arr := make([]interface{}, len(prods))
		for i, p := range prods {
			arr[i] = productionJSON(p)
		}
		productions[strconv.Itoa(int(fid))] = arr
	}

	functions := make([]interface{}, len(cnc.CncFuns))
	for i, cf := range cnc.CncFuns {
		lins := make([]int32, len(cf.Lins))
		copy(lins, cf.Lins)
		functions[i] = map[string]interface{}{"name": string(cf.Name), "lins": lins}
	}

	sequences := make([]interface{}, len(cnc.Sequences))
	for i, seq := range cnc.Sequences {
		arr := make([]interface{}, len(seq))
		for j, s := range seq {
			arr[j] = symbolJSON(s)
		}
		sequences[i] = arr
	}

	categories := make(map[string]interface{}, len(cnc.CncCatOrder))
	for _, name := range cnc.CncCatOrder {
		rng := cnc.CncCats[name]
		categories[string(name)] = map[string]interface{}{"start": rng.Start, "end": rng.End}
	}

	return map[string]interface{}{
		"flags":       flags,
		"productions": productions,
		"functions":   functions,
		"sequences":   sequences,
		"categories":  categories,
		"totalfids":   cnc.TotalCats,
	}
}

func literalJSON(l Literal) interface{} {
	switch l.Kind {
	case LiteralStr:
		return l.Str
	case LiteralInt:
		return l.Int
	case LiteralFloat:
		return l.Float
	default:
		return nil
	}
}

func productionJSON(p Production) interface{} {
	switch prod := p.(type) {
	case Apply:
		args := make([]interface{}, len(prod.Args))
		for i, a := range prod.Args {
			hypos := make([]int32, len(a.Hypos))
			copy(hypos, a.Hypos)
			args[i] = map[string]interface{}{"type": "PArg", "hypos": hypos, "fid": a.Fid}
		}
		return map[string]interface{}{"type": "Apply", "fid": prod.Fid, "args": args}
	case Coerce:
		return map[string]interface{}{"type": "Coerce", "arg": prod.Arg}
	default:
		return nil
	}
}

func symbolJSON(s Symbol) interface{} {
	switch sym := s.(type) {
	case SymCat:
		return map[string]interface{}{"type": "SymCat", "args": []int32{sym.D, sym.R}}
	case SymLit:
		return map[string]interface{}{"type": "SymLit", "args": []int32{sym.D, sym.R}}
	case SymVar:
		return map[string]interface{}{"type": "SymVar", "args": []int32{sym.D, sym.R}}
	case SymKS:
		return map[string]interface{}{"type": "SymKS", "args": []interface{}{sym.Token}}
	case SymKP:
		defaults := make([]interface{}, len(sym.Default))
		for i, d := range sym.Default {
			defaults[i] = symbolJSON(d)
		}
		alts := make([]interface{}, len(sym.Alts))
		for i, a := range sym.Alts {
			alts[i] = altJSON(a)
		}
		return map[string]interface{}{"type": "SymKP", "args": []interface{}{defaults, alts}}
	case SymNE:
		return map[string]interface{}{"type": "SymNE", "args": []interface{}{}}
	default:
		return nil
	}
}

func altJSON(a Alt) interface{} {
	symbols := make([]interface{}, len(a.Symbols))
	for i, s := range a.Symbols {
		symbols[i] = symbolJSON(s)
	}
	tokens := make([]interface{}, len(a.Tokens))
	for i, t := range a.Tokens {
		tokens[i] = t
	}
	return map[string]interface{}{"args": []interface{}{symbols, tokens}}
}

// projectionSchemaSource is a self-check of PgfToJSON's own documented
// shape (spec.md §6 and §8 Invariant 3), compiled once and reused. The
// teacher's core/types package wires the same library
// (santhosh-tekuri/jsonschema/v5) for exactly this purpose: catching a
// hand-built JSON projection drifting from its documented shape.
const projectionSchemaSource = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["abstract", "concretes"],
	"properties": {
		"abstract": {
			"type": "object",
			"required": ["name", "startcat", "funs"],
			"properties": {
				"name": {"type": "string"},
				"startcat": {"type": "string"},
				"funs": {"type": "object"}
			}
		},
		"concretes": {"type": "object"}
	}
}`

var (
	projectionSchemaOnce sync.Once
	projectionSchema     *jsonschema.Schema
	projectionSchemaErr  error
)

func compiledProjectionSchema() (*jsonschema.Schema, error) {
	projectionSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		const resourceName = "pgf-projection.json"
		if err := compiler.AddResource(resourceName, bytes.NewReader([]byte(projectionSchemaSource))); err != nil {
			projectionSchemaErr = err
			return
		}
		projectionSchema, projectionSchemaErr = compiler.Compile(resourceName)
	})
	return projectionSchema, projectionSchemaErr
}

func validateProjectionShape(data []byte) error {
	schema, err := compiledProjectionSchema()
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
