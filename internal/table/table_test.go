package table

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/wikibio/internal/model"
)

var (
	_ Writer = (*CSVWriter)(nil)
	_ Writer = (*JSONLWriter)(nil)
	_ Writer = (*YAMLWriter)(nil)
)

func testSchema() model.Schema {
	return model.NewSchema(model.DefaultFields())
}

func testRecords() []model.Record {
	linda := model.NewRecord("linda hayden , actress -lrb- 1953 -rrb-")
	linda.Attrs["name"] = "linda hayden"
	linda.Attrs["birth_date"] = "19 january 1953"
	linda.Attrs["occupation"] = "actress"

	walter := model.NewRecord("walter extra, \"designer\"")
	walter.Attrs["name"] = "walter extra"

	return []model.Record{linda, walter, model.NewRecord("no infobox")}
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestNewWriter(t *testing.T) {
	buf := &bytes.Buffer{}

	w, err := NewWriter(buf, FormatCSV, testSchema(), "")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if _, ok := w.(*CSVWriter); !ok {
		t.Errorf("expected *CSVWriter, got %T", w)
	}

	w, err = NewWriter(buf, FormatJSONL, testSchema(), "")
	if err != nil {
		t.Fatalf("jsonl: %v", err)
	}
	if _, ok := w.(*JSONLWriter); !ok {
		t.Errorf("expected *JSONLWriter, got %T", w)
	}

	w, err = NewWriter(buf, FormatYAML, testSchema(), "")
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if _, ok := w.(*YAMLWriter); !ok {
		t.Errorf("expected *YAMLWriter, got %T", w)
	}

	_, err = NewWriter(buf, Format("xml"), testSchema(), "")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestWriter_WriteAllThenFlush(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatJSONL, FormatYAML} {
		buf := &bytes.Buffer{}
		w, err := NewWriter(buf, format, testSchema(), "")
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}

		if err := w.Write(testRecords()[0]); err != nil {
			t.Fatalf("%s: write failed: %v", format, err)
		}
		if err := w.WriteAll(testRecords()[1:]); err != nil {
			t.Fatalf("%s: write all failed: %v", format, err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("%s: flush failed: %v", format, err)
		}

		if !strings.Contains(buf.String(), "walter extra") {
			t.Errorf("%s: expected flushed output to contain every record, got %q", format, buf.String())
		}
	}
}

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf, testSchema(), "")

	if err := w.WriteAll(testRecords()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	got := lines(buf)
	want := []string{
		"text,name,birth_date,birth_place,death_date,death_place,nationality,occupation",
		`"linda hayden , actress -lrb- 1953 -rrb-",linda hayden,19 january 1953,,,,,actress`,
		`"walter extra, ""designer""",walter extra,,,,,,`,
		"no infobox,,,,,,,",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected rows\n%v\ngot\n%v", want, got)
	}
}

func TestCSVWriter_CustomMarker(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf, model.NewSchema([]string{"name", "death_date"}), "NaN")

	if err := w.Write(testRecords()[0]); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	if !strings.Contains(buf.String(), "linda hayden,NaN\n") {
		t.Errorf("expected NaN marker, got %q", buf.String())
	}
}

func TestCSVWriter_EmptyTableHasHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf, model.NewSchema([]string{"name"}), "")

	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if buf.String() != "text,name\n" {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestCSV_RoundTripKeepsMissing(t *testing.T) {
	schema := testSchema()
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf, schema, "")
	if err := w.WriteAll(testRecords()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	records, err := ReadCSV(buf, schema, "")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[1].Text.String != "walter extra, \"designer\"" {
		t.Errorf("unexpected text %q", records[1].Text.String)
	}
	if records[1].Attrs["name"] != "walter extra" {
		t.Errorf("expected name walter extra, got %q", records[1].Attrs["name"])
	}
	if _, ok := records[1].Get("birth_date"); ok {
		t.Error("expected birth_date to stay missing")
	}
	if !reflect.DeepEqual(records[0].Attrs, testRecords()[0].Attrs) {
		t.Errorf("expected %v, got %v", testRecords()[0].Attrs, records[0].Attrs)
	}
}

func TestReadCSV_EmptyTextIsMissing(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("text,name\n,linda\n"), testSchema(), "")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Text.Valid {
		t.Error("expected empty text to read back as missing")
	}
	if records[0].Attrs["name"] != "linda" {
		t.Errorf("expected name linda, got %q", records[0].Attrs["name"])
	}
}

func TestReadCSV_UnknownColumnsIgnored(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("name,text,spouse\nlinda,hello,robin\n"), testSchema(), "")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Text.String != "hello" {
		t.Errorf("expected text hello, got %q", records[0].Text.String)
	}
	if _, ok := records[0].Attrs["spouse"]; ok {
		t.Error("expected unknown column to be ignored")
	}
}

func TestReadCSV_NoTextColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name\nlinda\n"), testSchema(), "")
	if !errors.Is(err, ErrMissingTextColumn) {
		t.Errorf("expected ErrMissingTextColumn, got %v", err)
	}

	_, err = ReadCSV(strings.NewReader(""), testSchema(), "")
	if !errors.Is(err, ErrMissingTextColumn) {
		t.Errorf("expected ErrMissingTextColumn for empty input, got %v", err)
	}
}

func TestReadCSV_RaggedRow(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("text,name\na,b\nc\n"), testSchema(), ""); err == nil {
		t.Error("expected error for ragged row")
	}
}

func TestJSONLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf, model.NewSchema([]string{"name", "death_date"}))

	if err := w.WriteAll(testRecords()[:2]); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	want := `{"text":"linda hayden , actress -lrb- 1953 -rrb-","name":"linda hayden","death_date":null}`
	if got[0] != want {
		t.Errorf("expected %s, got %s", want, got[0])
	}

	var obj map[string]*string
	if err := json.Unmarshal([]byte(got[1]), &obj); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if obj["name"] == nil || *obj["name"] != "walter extra" {
		t.Errorf("expected name walter extra, got %v", obj["name"])
	}
	if obj["death_date"] != nil {
		t.Errorf("expected null death_date, got %q", *obj["death_date"])
	}
}

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf, model.NewSchema([]string{"name", "birth_date"}))

	if err := w.WriteAll(testRecords()[:2]); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var out []map[string]*string
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(out))
	}
	if out[0]["birth_date"] == nil || *out[0]["birth_date"] != "19 january 1953" {
		t.Errorf("unexpected birth_date %v", out[0]["birth_date"])
	}
	if out[1]["birth_date"] != nil {
		t.Errorf("expected null birth_date, got %q", *out[1]["birth_date"])
	}

	if strings.Index(buf.String(), "text:") > strings.Index(buf.String(), "name:") {
		t.Error("expected text before name")
	}
}

func TestFilter(t *testing.T) {
	got := Filter(testRecords(), "name", "Linda Hayden")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Attrs["birth_date"] != "19 january 1953" {
		t.Errorf("unexpected match %v", got[0].Attrs)
	}

	if got := Filter(testRecords(), "death_date", ""); len(got) != 0 {
		t.Errorf("expected missing values not to match, got %d", len(got))
	}
}
