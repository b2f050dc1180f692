package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Run the tests
	os.Exit(m.Run())
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name             string
		expectedContains []string
	}{
		{
			name: "Successful execution",
			expectedContains: []string{
				"Usage:\n  pathfinder [command]",
				"Available Commands:",
				"analyze",
				"version",
				"help",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Redirect stdout
			oldStdout := os.Stdout
			r, w, _ := os.Pipe()
			os.Stdout = w

			// Call main
			main()

			// Restore stdout
			w.Close()
			os.Stdout = oldStdout
			var buf bytes.Buffer
			buf.ReadFrom(r)

			// Assert
			output := buf.String()
			for _, substr := range tt.expectedContains {
				assert.Contains(t, output, substr)
			}
			assert.NotContains(t, output, "scan")
			assert.NotContains(t, output, "diagnose")
		})
	}
}
