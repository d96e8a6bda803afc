package gmailclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := string(BuildMessage("secretaria@escola.br", "Resultado", "Olá"))

	assert.True(t, strings.HasPrefix(msg, "To: secretaria@escola.br\r\nSubject: Resultado\r\n"))
	assert.Contains(t, msg, "charset=\"UTF-8\"")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nOlá"))
}

func TestBuildMessage_EncodesAccentedSubject(t *testing.T) {
	msg := string(BuildMessage("a@b.c", "Seleção", ""))

	assert.Contains(t, msg, "Subject: =?utf-8?q?Sele=C3=A7=C3=A3o?=\r\n")
}
