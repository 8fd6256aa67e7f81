package ir

import "strings"

// Serialize renders p as the stable textual IR wire format described in
// spec.md section 6: one "%func name(%int p1, ...)" / "%endfunc" bracketed
// block per function, newline-separated instruction and label lines in
// between.
func Serialize(p *Program) string {
	var sb strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(funcHeader(fn))
		sb.WriteByte('\n')
		for _, in := range fn.Instrs {
			sb.WriteString(in.String())
			sb.WriteByte('\n')
		}
		sb.WriteString("%endfunc\n")
	}
	return sb.String()
}

func funcHeader(fn Function) string {
	var sb strings.Builder
	sb.WriteString("%func ")
	sb.WriteString(fn.Name)
	sb.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("%int ")
		sb.WriteString(p)
	}
	sb.WriteByte(')')
	return sb.String()
}
