package parser

import "fmt"

// freshTemp returns a new compiler-introduced scalar name, "_temp<n>".
func (p *Parser) freshTemp() string {
	name := fmt.Sprintf("_temp%d", p.tempCounter)
	p.tempCounter++
	return name
}

// freshLoopLabels atomically allocates a matched (begin, end) label pair
// for one while-loop activation. Returning both labels from a single call
// is the fix for the source's known nesting bug (spec.md section 4.2/9):
// a naive "allocate begin, recurse into the body, allocate end" sequence
// lets an inner loop's begin/end calls advance the shared counter before
// the outer loop reads its own end label.
func (p *Parser) freshLoopLabels() loopLabels {
	p.loopCounter++
	n := p.loopCounter
	return loopLabels{
		begin: fmt.Sprintf("beginningloop%d", n),
		end:   fmt.Sprintf("endloop%d", n),
	}
}

// freshIfLabels atomically allocates the label triple for one if/else
// activation: iftrue and endif share a counter, else has its own -- this
// matches the distinct fresh_if_begin/fresh_if_end/fresh_else counters of
// spec.md section 4.2, allocated together so nested ifs cannot collide.
func (p *Parser) freshIfLabels() (iftrue, elseLabel, endif string) {
	p.ifCounter++
	p.elseCounter++
	return fmt.Sprintf("iftrue%d", p.ifCounter),
		fmt.Sprintf("else%d", p.elseCounter),
		fmt.Sprintf("endif%d", p.ifCounter)
}
