package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smpl/internal/errors"
)

func TestParseSourceValid(t *testing.T) {
	program, parseErrors := ParseSource("ok.smpl", "main var x; { let x <- 1; call OutputNum(x) }.")

	assert.Empty(t, parseErrors)
	require.NotNil(t, program)
	assert.Len(t, program.Body, 2)
}

func TestParseSourceReportsPosition(t *testing.T) {
	program, parseErrors := ParseSource("bad.smpl", "main var x;\n{\n  let x 1\n}.")

	assert.Nil(t, program)
	require.Len(t, parseErrors, 1)
	assert.Equal(t, "bad.smpl", parseErrors[0].Position.Filename)
	assert.Equal(t, 3, parseErrors[0].Position.Line)
	assert.NotEmpty(t, parseErrors[0].Message)

	diag := parseErrors[0].Diagnostic()
	assert.Equal(t, errors.ErrorSyntax, diag.Code)
	assert.Equal(t, errors.Error, diag.Level)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.smpl")
	require.NoError(t, os.WriteFile(path, []byte("main { call OutputNewLine }."), 0o644))

	program, parseErrors, err := ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, parseErrors)
	require.NotNil(t, program)

	_, _, err = ParseFile(filepath.Join(t.TempDir(), "missing.smpl"))
	assert.Error(t, err)
}
