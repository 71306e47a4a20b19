package outputs

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestMimeTypeKnown(t *testing.T) {
	known := []MimeType{
		MimeHTML, MimePlain, MimeJSON, MimePNG, MimeJPEG, MimeGIF, MimeSVG,
		MimeMP4, MimeMPEG, MimeError, MimeCSV, MimeMarkdown,
	}
	for _, m := range known {
		if !m.Known() {
			t.Errorf("%s should be known", m)
		}
	}
	if MimeType("application/pdf").Known() {
		t.Error("application/pdf should not be known")
	}
	if MimeType("").Known() {
		t.Error("empty mimetype should not be known")
	}
}

func TestMimeTypeMediaPredicates(t *testing.T) {
	if !MimePNG.IsImage() || !MimeSVG.IsImage() {
		t.Error("png/svg should be images")
	}
	if MimeMP4.IsImage() {
		t.Error("mp4 is not an image")
	}
	if !MimeMP4.IsVideo() || !MimeMPEG.IsVideo() {
		t.Error("mp4/mpeg should be videos")
	}
	if MimePlain.IsVideo() {
		t.Error("text/plain is not a video")
	}
}

func TestTextData(t *testing.T) {
	got, err := TextData(Message{MimeType: MimePlain, Data: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}

	_, err = TextData(Message{MimeType: MimePlain, Data: 42})
	if !errors.Is(err, ErrShape) {
		t.Errorf("non-string data should wrap ErrShape, got %v", err)
	}

	_, err = TextData(Message{MimeType: MimePlain, Data: nil})
	if !errors.Is(err, ErrShape) {
		t.Errorf("nil data should wrap ErrShape, got %v", err)
	}
}

func TestErrorDataDecoded(t *testing.T) {
	records := []ErrorRecord{ExceptionError("NameError", "name 'x' is not defined", []string{"line 1"})}
	got, err := ErrorData(Message{MimeType: MimeError, Data: records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Type != "NameError" {
		t.Errorf("got %+v", got)
	}
}

func TestErrorDataFromJSONText(t *testing.T) {
	payload := `[{"type":"interruption","msg":"execution was interrupted"},{"type":"exception","msg":"boom","traceback":["a","b"]}]`
	got, err := ErrorData(Message{MimeType: MimeError, Data: payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 records, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0], InterruptionError()) {
		t.Errorf("first record = %+v", got[0])
	}
	if len(got[1].Traceback) != 2 {
		t.Errorf("traceback = %v", got[1].Traceback)
	}
}

func TestErrorDataFromGenericSlice(t *testing.T) {
	// json.Unmarshal 进 any 后错误记录变成 []any，ErrorData 要能二次解码。
	var data any
	if err := json.Unmarshal([]byte(`[{"type":"exception","msg":"boom"}]`), &data); err != nil {
		t.Fatal(err)
	}
	got, err := ErrorData(Message{MimeType: MimeError, Data: data})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Msg != "boom" {
		t.Errorf("got %+v", got)
	}
}

func TestErrorDataShapeViolations(t *testing.T) {
	if _, err := ErrorData(Message{MimeType: MimeError, Data: 7}); !errors.Is(err, ErrShape) {
		t.Errorf("numeric data should wrap ErrShape, got %v", err)
	}
	if _, err := ErrorData(Message{MimeType: MimeError, Data: "not json"}); !errors.Is(err, ErrShape) {
		t.Errorf("malformed text should wrap ErrShape, got %v", err)
	}
}
