package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/depsub/internal/ui/output"
)

func TestDetect(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Detect(), "NO_COLOR should force Ascii profile")

	t.Setenv("NO_COLOR", "")
	p := output.Detect()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ANSI())

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ANSI())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())

	assert.NotNil(t, output.New(nil))
}

func TestNewWithProfile(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, output.ANSI)
	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())

	assert.NotNil(t, output.NewWithProfile(nil, output.Detect))
}
