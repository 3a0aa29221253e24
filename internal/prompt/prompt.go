// Package prompt implements the line-based conversion flow used when the
// terminal UI is not wanted.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nconklindev/catalogfmt/internal/converter"
	"github.com/nconklindev/catalogfmt/internal/types"
)

const Question = "입력 파일 경로를 입력하세요 (.xlsx 또는 .csv): "

// ReadPath prints the question and returns the first line of input with
// surrounding whitespace and quotes removed.
func ReadPath(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, Question)

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	path := CleanPath(line)
	if path == "" {
		return "", fmt.Errorf("no input file given")
	}
	return path, nil
}

// CleanPath strips whitespace and the quotes terminals add around dragged
// file paths.
func CleanPath(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

// Run converts inputFile, asking for it on in when empty, and reports the
// outcome on out.
func Run(in io.Reader, out io.Writer, conv *converter.Converter, inputFile string) (*types.ConversionResult, error) {
	if inputFile == "" {
		path, err := ReadPath(in, out)
		if err != nil {
			fmt.Fprintf(out, "\n입력 파일 경로를 읽지 못했습니다: %v\n", err)
			return nil, err
		}
		inputFile = path
	} else {
		inputFile = CleanPath(inputFile)
	}

	result, err := conv.Convert(inputFile, nil)
	if err != nil {
		fmt.Fprintln(out, ErrorMessage(err))
		return nil, err
	}

	PrintResult(out, result)
	return result, nil
}

// ErrorMessage turns a conversion error into the message shown to users.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, converter.ErrUnsupportedFormat):
		return "지원하지 않는 파일 형식입니다. .xlsx 또는 .csv 파일만 지원합니다."
	case errors.Is(err, os.ErrNotExist):
		return "입력한 파일이 존재하지 않습니다."
	case errors.Is(err, converter.ErrLoad):
		return fmt.Sprintf("파일을 읽는 중 오류 발생: %v", err)
	case errors.Is(err, converter.ErrHeaderParse):
		return fmt.Sprintf("데이터를 읽는 중 오류 발생: %v", err)
	case errors.Is(err, converter.ErrWrite):
		return fmt.Sprintf("파일 저장 중 오류 발생: %v", err)
	default:
		return fmt.Sprintf("오류 발생: %v", err)
	}
}

func PrintResult(out io.Writer, result *types.ConversionResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, converter.HeaderMessage(result.HeaderRow-1))
	if len(result.ColumnsFound) > 0 {
		fmt.Fprintf(out, "사용된 열: %s\n", JoinColumns(result.ColumnsFound))
	}
	if len(result.ColumnsMissing) > 0 {
		fmt.Fprintf(out, "찾지 못한 열: %s\n", JoinColumns(result.ColumnsMissing))
	}
	fmt.Fprintf(out, "변환된 파일이 %s에 저장되었습니다. (%d행)\n", result.OutputFile, result.RowsProcessed)
}

// JoinColumns flattens multi-line header names for single-line output.
func JoinColumns(cols []string) string {
	flat := make([]string, len(cols))
	for i, c := range cols {
		flat[i] = strings.Join(strings.Fields(c), " ")
	}
	return strings.Join(flat, ", ")
}
