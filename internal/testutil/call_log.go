package testutil

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CallLogEntry records one invocation of the helper process.
type CallLogEntry struct {
	Args     []string `yaml:"args,omitempty"`
	ExitCode int      `yaml:"exit_code"`
}

// CallLog wraps []CallLogEntry for YAML serialization.
type CallLog struct {
	Entries []CallLogEntry `yaml:"entries"`
}

// AppendCallLog adds entry to the YAML call log at path, creating it if needed.
func AppendCallLog(path string, entry CallLogEntry) error {
	log, err := ReadCallLog(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if log == nil {
		log = &CallLog{}
	}
	log.Entries = append(log.Entries, entry)

	data, err := yaml.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshaling call log to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing call log to %s: %w", path, err)
	}
	return nil
}

// ReadCallLog reads a YAML call log file.
func ReadCallLog(path string) (*CallLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading call log from %s: %w", path, err)
	}

	var log CallLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("unmarshaling call log YAML: %w", err)
	}
	return &log, nil
}
