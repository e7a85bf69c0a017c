package wikipedia

import "encoding/json"

// jsonArray decodes one element of an opensearch response, which mixes a
// bare query string with arrays of strings in a single top-level array.
type jsonArray struct {
	strings []string
}

func (a *jsonArray) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.strings = []string{s}
		return nil
	}
	return json.Unmarshal(data, &a.strings)
}
