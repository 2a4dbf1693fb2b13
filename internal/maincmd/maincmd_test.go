package maincmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func stdio(stdin string, stdout, stderr *bytes.Buffer) mainer.Stdio {
	return mainer.Stdio{
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func TestRunFileSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.crux")
	require.NoError(t, os.WriteFile(path, []byte(`println(1 + 2);`), 0644))

	var out, errOut bytes.Buffer
	code := RunFile(context.Background(), stdio("", &out, &errOut), path)
	require.Equal(t, mainer.Success, code)
	require.Equal(t, "3\n", out.String())
	require.Empty(t, errOut.String())
}

func TestRunFileMissingPathIsIOError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := RunFile(context.Background(), stdio("", &out, &errOut), filepath.Join(t.TempDir(), "missing.crux"))
	require.Equal(t, exitIO, code)
	require.NotEmpty(t, errOut.String())
}

func TestRunFileCompileErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.crux")
	require.NoError(t, os.WriteFile(path, []byte(`let = ;`), 0644))

	var out, errOut bytes.Buffer
	code := RunFile(context.Background(), stdio("", &out, &errOut), path)
	require.Equal(t, exitCompile, code)
	require.NotEmpty(t, errOut.String())
}

func TestRunFileRuntimeErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panics.crux")
	require.NoError(t, os.WriteFile(path, []byte(`1 / 0;`), 0644))

	var out, errOut bytes.Buffer
	code := RunFile(context.Background(), stdio("", &out, &errOut), path)
	require.Equal(t, exitRuntime, code)
	require.Contains(t, errOut.String(), "MATH")
}

func TestREPLAllowsGlobalRedefinitionAcrossLines(t *testing.T) {
	var out, errOut bytes.Buffer
	code := REPL(context.Background(), stdio("let x = 1;\nlet x = 2;\nprintln(x);\n", &out, &errOut))
	require.Equal(t, mainer.Success, code)
	require.Contains(t, out.String(), "2\n")
	require.Empty(t, errOut.String())
}

func TestREPLReportsErrorAndContinues(t *testing.T) {
	var out, errOut bytes.Buffer
	code := REPL(context.Background(), stdio("1 / 0;\nprintln(42);\n", &out, &errOut))
	require.Equal(t, mainer.Success, code)
	require.Contains(t, errOut.String(), "MATH")
	require.Contains(t, out.String(), "42\n")
}

func TestCmdValidateRejectsTooManyArgs(t *testing.T) {
	c := &Cmd{}
	c.SetArgs([]string{"a.crux", "b.crux"})
	require.Error(t, c.Validate())
}

func TestCmdValidateAllowsZeroOrOneArg(t *testing.T) {
	c := &Cmd{}
	c.SetArgs(nil)
	require.NoError(t, c.Validate())

	c.SetArgs([]string{"a.crux"})
	require.NoError(t, c.Validate())
}
