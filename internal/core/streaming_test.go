package core

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("firstName,lastName")...),
			expected: "firstName,lastName",
		},
		{
			name:     "file without BOM",
			input:    []byte("firstName,lastName"),
			expected: "firstName,lastName",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "shorter than BOM",
			input:    []byte("ab"),
			expected: "ab",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewBOMSkippingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestBOMSkippingReader_SmallReads(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\nc,d\n")...)
	reader := NewBOMSkippingReader(iotest.OneByteReader(bytes.NewReader(input)))

	result, err := io.ReadAll(iotest.OneByteReader(reader))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != "a,b\nc,d\n" {
		t.Errorf("got %q, want %q", string(result), "a,b\nc,d\n")
	}
}

func TestBOMSkippingReader_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	reader := NewBOMSkippingReader(iotest.ErrReader(boom))

	_, err := io.ReadAll(reader)
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
}
