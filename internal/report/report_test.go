package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"chtagger/internal/tagging"
	"chtagger/internal/transcript"
)

func sampleDocument() Document {
	cues := []transcript.Cue{
		{StartMS: 0, EndMS: 2000, Channel: transcript.Left, Timing: "00:00:00.000 --> 00:00:02.000", Text: "Hello there", LeftActiveMS: 1500, RightActiveMS: 200},
		{StartMS: 2000, EndMS: 4000, Channel: transcript.Right, Timing: "00:00:02.000 --> 00:00:04.000", Text: "General Kenobi", RightActiveMS: 2000},
		{StartMS: 4000, EndMS: 5000, Channel: transcript.None, Timing: "00:00:04.000 --> 00:00:05.000", Text: "", LeftActiveMS: 0, RightActiveMS: 0},
	}
	return Document{
		RunID:     "run-1",
		Audio:     "talk.wav",
		Subtitles: "talk.vtt",
		Cues:      cues,
		Summary:   tagging.Summarize(cues),
	}
}

func TestWriteTableHeadersAndRowOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), Options{Format: FormatTable}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	out := buf.String()

	headerIdx := -1
	for _, header := range []string{"Start Time (ms)", "End Time (ms)", "Channel", "TimeStamp", "Content"} {
		idx := strings.Index(out, header)
		if idx < 0 {
			t.Fatalf("expected header %q in output:\n%s", header, out)
		}
		if idx < headerIdx {
			t.Fatalf("header %q out of order in output:\n%s", header, out)
		}
		headerIdx = idx
	}
	if strings.Contains(out, "Left (ms)") {
		t.Fatalf("did not expect activity columns by default:\n%s", out)
	}

	first := strings.Index(out, "Hello there")
	second := strings.Index(out, "General Kenobi")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected cues in source order:\n%s", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var channels []string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "Hello there"):
			channels = append(channels, cellAt(line, 2))
		case strings.Contains(line, "General Kenobi"):
			channels = append(channels, cellAt(line, 2))
		case strings.Contains(line, "00:00:04.000 --> 00:00:05.000"):
			channels = append(channels, cellAt(line, 2))
		}
	}
	if strings.Join(channels, ",") != "L,R,None" {
		t.Fatalf("unexpected channel cells %v in output:\n%s", channels, out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("expected trailing newline")
	}
}

// cellAt returns the trimmed content of column idx in a rendered table line.
func cellAt(line string, idx int) string {
	cells := strings.Split(line, "\u2502")
	if len(cells) < idx+2 {
		return ""
	}
	return strings.TrimSpace(cells[idx+1])
}

func TestWriteTableShowActivity(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), Options{Format: FormatTable, ShowActivity: true, TableStyle: "light"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Left (ms)", "Right (ms)", "1500", "cues: 3  left: 1  right: 1  none: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	doc := sampleDocument()
	doc.Cues[0].Text = "Hello, there"
	if err := Write(&buf, doc, Options{Format: FormatCSV}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(records))
	}
	if got := strings.Join(records[0], "|"); got != "Start Time (ms)|End Time (ms)|Channel|TimeStamp|Content" {
		t.Fatalf("unexpected header %q", got)
	}
	if records[1][4] != "Hello, there" || records[1][2] != "L" {
		t.Fatalf("unexpected first row %v", records[1])
	}
	if records[3][2] != "None" || records[3][4] != "" {
		t.Fatalf("unexpected last row %v", records[3])
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), Options{Format: FormatMarkdown}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, separator and 3 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "| Start Time (ms) | End Time (ms) | Channel | TimeStamp | Content |") {
		t.Fatalf("unexpected markdown header %q", lines[0])
	}
	if !strings.Contains(lines[2], "| L |") {
		t.Fatalf("unexpected first row %q", lines[2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), Options{Format: FormatJSON}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	var payload struct {
		RunID string `json:"run_id"`
		Cues  []struct {
			StartMS int64  `json:"start_ms"`
			Channel string `json:"channel"`
			Content string `json:"content"`
		} `json:"cues"`
		Summary tagging.Summary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if payload.RunID != "run-1" || len(payload.Cues) != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Cues[1].Channel != "right" || payload.Cues[1].StartMS != 2000 {
		t.Fatalf("unexpected second cue %+v", payload.Cues[1])
	}
	if payload.Summary.None != 1 || payload.Summary.LeftActiveMS != 1500 {
		t.Fatalf("unexpected summary %+v", payload.Summary)
	}
}

func TestWriteJSONEmptyCuesIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Document{Audio: "a.wav"}, Options{Format: FormatJSON}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"cues": []`) {
		t.Fatalf("expected empty cue array, got %s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), Options{Format: FormatYAML}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	var payload map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	cues, ok := payload["cues"].([]any)
	if !ok || len(cues) != 3 {
		t.Fatalf("unexpected cues %#v", payload["cues"])
	}
	first, _ := cues[0].(map[string]any)
	if first["channel"] != "left" || first["content"] != "Hello there" {
		t.Fatalf("unexpected first cue %#v", first)
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sampleDocument(), Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
