package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/salesmix/internal/model"
)

// ReadJSON reads an array of flat objects ([{...},{...}]) into a table. The
// header is the union of keys in first-seen order; absent keys and nulls
// become empty cells. Numbers keep their source text.
func ReadJSON(ctx context.Context, r io.Reader) (*model.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, eris.Wrap(err, "json: read opening token")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, eris.Errorf("json: expected '[', got %v", tok)
	}

	index := make(map[string]int)
	var header []string
	var objects []map[string]string

	for dec.More() {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "json: context cancelled")
		}

		obj, keys, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(header)
				header = append(header, k)
			}
		}
		objects = append(objects, obj)
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, eris.Wrap(err, "json: read closing token")
	}
	if len(header) == 0 {
		return nil, eris.New("json: no fields found")
	}

	t := &model.Table{Header: header, Rows: make([][]string, len(objects))}
	for i, obj := range objects {
		row := make([]string, len(header))
		for k, v := range obj {
			row[index[k]] = v
		}
		t.Rows[i] = row
	}
	return t, nil
}

// decodeObject reads one object and returns its values as text plus its keys
// in document order.
func decodeObject(dec *json.Decoder) (map[string]string, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, eris.Wrap(err, "json: read object")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, eris.Errorf("json: expected object, got %v", tok)
	}

	obj := make(map[string]string)
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, eris.Wrap(err, "json: read key")
		}
		key, _ := keyTok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, eris.Wrapf(err, "json: decode field %q", key)
		}
		if _, seen := obj[key]; !seen {
			keys = append(keys, key)
		}
		obj[key] = cellText(v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, eris.Wrap(err, "json: read object end")
	}
	return obj, keys, nil
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return fmt.Sprint(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}
