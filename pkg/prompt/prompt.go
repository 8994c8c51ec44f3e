// Package prompt 实现删除前的确认交互。
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moyu-x/clean-img/internal"
)

// Confirmer 询问用户是否继续，返回 false 表示放弃操作
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Accepted 输入去掉行尾换行后与 "yes" 相同（不区分大小写）才视为确认
func Accepted(answer string) bool {
	return strings.EqualFold(strings.TrimRight(answer, "\r\n"), internal.ConfirmToken)
}

// LineConfirmer 从输入读取一行作为回答
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &LineConfirmer{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *LineConfirmer) Confirm(question string) (bool, error) {
	fmt.Fprint(c.out, question)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("读取输入失败: %w", err)
	}
	if err == io.EOF {
		// 输入已关闭，没有任何回答时按取消处理
		fmt.Fprintln(c.out)
		if line == "" {
			return false, nil
		}
	}

	return Accepted(line), nil
}
