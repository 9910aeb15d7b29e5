package chip8

import (
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// load returns an interpreter running the given instruction words.
func load(t *testing.T, words ...uint16) *Interpreter {
	t.Helper()

	program := make([]byte, 0, len(words)*2)
	for _, word := range words {
		program = append(program, byte(word>>8), byte(word))
	}

	interpreter := NewInterpreter(WithRandom(rand.New(rand.NewPCG(1, 2))))
	assert.NoError(t, interpreter.LoadBytes(program))
	return interpreter
}

// steps executes count instructions and fails on the first error.
func steps(t *testing.T, interpreter *Interpreter, count int) {
	t.Helper()

	for range count {
		assert.NoError(t, interpreter.Step())
	}
}
