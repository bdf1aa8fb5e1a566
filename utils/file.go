package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// WritePacketsToFile writes one 0x-hex packet per line, replacing the file.
// A non-empty header is written first as a '#' comment.
func WritePacketsToFile(filename, header string, packets [][]byte) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if header != "" {
		fmt.Fprintf(w, "# %s\n", header)
	}
	for i, p := range packets {
		if _, err := w.WriteString(hexutil.Encode(p) + "\n"); err != nil {
			return fmt.Errorf("failed to write packet %d: %w", i, err)
		}
	}
	return w.Flush()
}

// ReadPacketsFromFile reads a file written by WritePacketsToFile. Blank lines
// and '#' comments are skipped.
func ReadPacketsFromFile(filename string) ([][]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var packets [][]byte
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := hexutil.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, n, err)
		}
		packets = append(packets, p)
	}
	return packets, scanner.Err()
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// EnsureDir ensures a directory exists, creates it if it doesn't
func EnsureDir(dirPath string) error {
	if !FileExists(dirPath) {
		return os.MkdirAll(dirPath, 0755)
	}
	return nil
}
