package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nconklindev/catalogfmt/internal/converter"
	"github.com/nconklindev/catalogfmt/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CATALOGFMT_LOG_DIR", t.TempDir())
	t.Setenv("CATALOGFMT_LOG_LEVEL", "")
	t.Setenv("CATALOGFMT_OUTPUT_DIR", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.toml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_PlainPrompt(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "supplier.csv")
	require.NoError(t, os.WriteFile(inputFile, []byte("품목코드,품목명\nA-01,Acetone\n"), 0644))

	out, err := runRoot(t, inputFile+"\n", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, prompt.Question))
	assert.Contains(t, out, "헤더를 1번째 행에서 찾았습니다.")

	matches, err := filepath.Glob(filepath.Join(tmpDir, "*_bot_"+converter.VendorToken+"_형식화.xlsx"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRootCmd_ArgumentUnsupported(t *testing.T) {
	out, err := runRoot(t, "", filepath.Join(t.TempDir(), "data.txt"))
	assert.ErrorIs(t, err, converter.ErrUnsupportedFormat)
	assert.Contains(t, out, "지원하지 않는 파일 형식입니다.")
	assert.NotContains(t, out, prompt.Question)
}

func TestRootCmd_Version(t *testing.T) {
	out, err := runRoot(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "catalogfmt dev")
}
