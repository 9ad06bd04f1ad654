package bytecode

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// wireValue and wireInstruction mirror Value/Instruction in a form plain
// encoding/json can round-trip: HostFn can't be serialized (it never
// appears in a compiled constant pool — only the VM's globals hold one) and
// Dict's `map[any]DictEntry` keying needs flattening to a JSON array of
// pairs since JSON object keys must be strings.
type wireValue struct {
	Kind string      `json:"kind"`
	Int  int64       `json:"int,omitempty"`
	Flt  float64     `json:"flt,omitempty"`
	Bool bool        `json:"bool,omitempty"`
	Str  string      `json:"str,omitempty"`
	List []wireValue `json:"list,omitempty"`
	Dict []wirePair  `json:"dict,omitempty"`
	Fn   *wireFn     `json:"fn,omitempty"`
}

type wirePair struct {
	Key wireValue `json:"key"`
	Val wireValue `json:"val"`
}

type wireFn struct {
	Name   string     `json:"name"`
	Params []string   `json:"params"`
	Code   *wireCode  `json:"code"`
}

type wireInstruction struct {
	Op           string    `json:"op"`
	Operand      int       `json:"operand,omitempty"`
	Name         string    `json:"name,omitempty"`
	Function     *wireFn   `json:"function,omitempty"`
	ForLoopVar   string    `json:"for_loop_var,omitempty"`
	ForLoopBody  *wireCode `json:"for_loop_body,omitempty"`
	Line         int       `json:"line,omitempty"`
	CrossesFrame bool      `json:"crosses_frame,omitempty"`
	Unbound      bool      `json:"unbound,omitempty"`
}

type wireCode struct {
	Name      string            `json:"name"`
	Code      []wireInstruction `json:"code"`
	Constants []wireValue       `json:"constants"`
}

func toWireValue(v Value) wireValue {
	wv := wireValue{Kind: v.Kind.String()}
	switch v.Kind {
	case KindInt:
		wv.Int = v.Int
	case KindFloat:
		wv.Flt = v.Flt
	case KindBool:
		wv.Bool = v.Bool
	case KindString:
		wv.Str = v.Str
	case KindList:
		wv.List = make([]wireValue, len(v.List))
		for i, el := range v.List {
			wv.List[i] = toWireValue(el)
		}
	case KindDict:
		wv.Dict = make([]wirePair, 0, len(v.Dict))
		for _, entry := range v.Dict {
			wv.Dict = append(wv.Dict, wirePair{Key: toWireValue(entry.Key), Val: toWireValue(entry.Val)})
		}
	case KindFunction:
		wv.Fn = toWireFn(v.Fn)
	case KindHostFn:
		// Not representable; dumps never need to carry a host builtin.
	}
	return wv
}

func fromWireValue(wv wireValue) (Value, error) {
	switch wv.Kind {
	case "nil":
		return Nil, nil
	case "int":
		return IntValue(wv.Int), nil
	case "float":
		return FloatValue(wv.Flt), nil
	case "bool":
		return BoolValue(wv.Bool), nil
	case "string":
		return StringValue(wv.Str), nil
	case "list":
		items := make([]Value, len(wv.List))
		for i, el := range wv.List {
			v, err := fromWireValue(el)
			if err != nil {
				return Nil, err
			}
			items[i] = v
		}
		return ListValue(items), nil
	case "dict":
		d := NewDict()
		for _, pair := range wv.Dict {
			k, err := fromWireValue(pair.Key)
			if err != nil {
				return Nil, err
			}
			val, err := fromWireValue(pair.Val)
			if err != nil {
				return Nil, err
			}
			d.Dict[KeyOf(k)] = DictEntry{Key: k, Val: val}
		}
		return d, nil
	case "function":
		fn, err := fromWireFn(wv.Fn)
		if err != nil {
			return Nil, err
		}
		return FunctionValue(fn), nil
	default:
		return Nil, fmt.Errorf("bytecode: cannot decode value kind %q", wv.Kind)
	}
}

func toWireFn(fn *Function) *wireFn {
	return &wireFn{Name: fn.Name, Params: fn.Params, Code: toWireCode(fn.Code)}
}

func fromWireFn(wf *wireFn) (*Function, error) {
	code, err := fromWireCode(wf.Code)
	if err != nil {
		return nil, err
	}
	return &Function{Name: wf.Name, Params: wf.Params, Code: code}, nil
}

func toWireInstruction(instr Instruction) wireInstruction {
	wi := wireInstruction{
		Op:           instr.Op.String(),
		Operand:      instr.Operand,
		Name:         instr.Name,
		Line:         instr.Line,
		CrossesFrame: instr.CrossesFrame,
		Unbound:      instr.Unbound,
	}
	if instr.Function != nil {
		wi.Function = toWireFn(&Function{Name: instr.Function.Name, Params: instr.Function.Params, Code: instr.Function.Code})
	}
	if instr.ForLoop != nil {
		wi.ForLoopVar = instr.ForLoop.Var
		wi.ForLoopBody = toWireCode(instr.ForLoop.Body)
	}
	return wi
}

func fromWireInstruction(wi wireInstruction) (Instruction, error) {
	op, ok := opcodeByName[wi.Op]
	if !ok {
		return Instruction{}, fmt.Errorf("bytecode: unknown opcode %q", wi.Op)
	}
	instr := Instruction{
		Op:           op,
		Operand:      wi.Operand,
		Name:         wi.Name,
		Line:         wi.Line,
		CrossesFrame: wi.CrossesFrame,
		Unbound:      wi.Unbound,
	}
	if wi.Function != nil {
		code, err := fromWireCode(wi.Function.Code)
		if err != nil {
			return Instruction{}, err
		}
		instr.Function = &FunctionProto{Name: wi.Function.Name, Params: wi.Function.Params, Code: code}
	}
	if wi.ForLoopBody != nil {
		code, err := fromWireCode(wi.ForLoopBody)
		if err != nil {
			return Instruction{}, err
		}
		instr.ForLoop = &ForLoopProto{Var: wi.ForLoopVar, Body: code}
	}
	return instr, nil
}

var opcodeByName = func() map[string]OpCode {
	m := make(map[string]OpCode, len(opcodeNames))
	for op, name := range opcodeNames {
		if name != "" {
			m[name] = OpCode(op)
		}
	}
	return m
}()

func toWireCode(code *CodeObject) *wireCode {
	wc := &wireCode{Name: code.Name}
	wc.Code = make([]wireInstruction, len(code.Code))
	for i, instr := range code.Code {
		wc.Code[i] = toWireInstruction(instr)
	}
	wc.Constants = make([]wireValue, len(code.Constants))
	for i, c := range code.Constants {
		wc.Constants[i] = toWireValue(c)
	}
	return wc
}

func fromWireCode(wc *wireCode) (*CodeObject, error) {
	code := NewCodeObject(wc.Name)
	code.Constants = make([]Value, len(wc.Constants))
	for i, wv := range wc.Constants {
		v, err := fromWireValue(wv)
		if err != nil {
			return nil, err
		}
		code.Constants[i] = v
	}
	code.Code = make([]Instruction, len(wc.Code))
	for i, wi := range wc.Code {
		instr, err := fromWireInstruction(wi)
		if err != nil {
			return nil, err
		}
		code.Code[i] = instr
	}
	return code, nil
}

// Encode serializes a CodeObject to JSON for the `axon dump` command and for
// the .axc files written by `axon compile`.
func Encode(code *CodeObject) ([]byte, error) {
	raw, err := json.MarshalIndent(toWireCode(code), "", "  ")
	if err != nil {
		return nil, err
	}
	// sjson lets the CLI layer stamp a format version onto the dump without
	// this package needing to know about the wrapping envelope every
	// consumer wants; done here so every Encode caller gets it for free.
	stamped, err := sjson.SetBytes(raw, "__format_version", 1)
	if err != nil {
		return nil, err
	}
	return stamped, nil
}

// Decode parses JSON produced by Encode back into a CodeObject.
func Decode(data []byte) (*CodeObject, error) {
	var wc wireCode
	if err := json.Unmarshal(data, &wc); err != nil {
		return nil, err
	}
	return fromWireCode(&wc)
}

// QueryDump evaluates a gjson path expression against an encoded dump,
// backing the `axon dump --query` flag.
func QueryDump(data []byte, path string) (string, error) {
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return "", fmt.Errorf("bytecode: query %q matched nothing", path)
	}
	return result.String(), nil
}
