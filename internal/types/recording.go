package types

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Recording file names follow the portal convention
// "YYYYMMDD_HHMMSS_Agente_<id>_Fila_<queue>.<ext>"; the transcription step
// appends "_diarizado" before the extension.
var recordingName = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})(\d{2})_Agente_(\d+)_Fila_(.+?)(?:_diarizado)?$`)

// RecordingInfo is the metadata encoded in a recording file name.
type RecordingInfo struct {
	When    time.Time
	AgentID string
	Queue   string
}

// RecordingBaseName builds the conventional base name (no extension) for a
// downloaded call. Spaces in the queue become underscores so the name stays
// a single token.
func RecordingBaseName(info RecordingInfo) string {
	queue := strings.ReplaceAll(info.Queue, " ", "_")
	return fmt.Sprintf("%s_Agente_%s_Fila_%s", info.When.Format("20060102_150405"), info.AgentID, queue)
}

// ParseRecordingName decodes the portal filename convention. The input may
// be a bare base name or a full path with extension.
func ParseRecordingName(name string) (RecordingInfo, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	m := recordingName.FindStringSubmatch(base)
	if m == nil {
		return RecordingInfo{}, fmt.Errorf("file name %q does not follow the recording convention", name)
	}
	when, err := time.ParseInLocation("20060102_150405",
		m[1]+m[2]+m[3]+"_"+m[4]+m[5]+m[6], time.Local)
	if err != nil {
		return RecordingInfo{}, err
	}
	return RecordingInfo{
		When:    when,
		AgentID: m[7],
		Queue:   strings.ReplaceAll(m[8], "_", " "),
	}, nil
}
