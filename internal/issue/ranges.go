package issue

// NormalizeEntry converts one raw range entry into canonical form. Accepted
// shapes: a bare line number, a [start, end] pair, an object with start_line
// and optionally end_line and note, or an already-canonical LineRange.
func NormalizeEntry(file string, v any) (LineRange, error) {
	switch entry := v.(type) {
	case LineRange:
		if entry.StartLine < 1 || entry.EndLine < entry.StartLine {
			return LineRange{}, &MalformedRangeError{File: file, Value: v}
		}
		return entry, nil
	case []any:
		if len(entry) != 2 {
			return LineRange{}, &MalformedRangeError{File: file, Value: v}
		}
		start, ok := asLine(entry[0])
		if !ok {
			return LineRange{}, &MalformedRangeError{File: file, Value: v}
		}
		end, ok := asLine(entry[1])
		if !ok || end < start {
			return LineRange{}, &MalformedRangeError{File: file, Value: v}
		}
		return LineRange{StartLine: start, EndLine: end}, nil
	case map[string]any:
		return normalizeObject(file, entry)
	default:
		line, ok := asLine(v)
		if !ok {
			return LineRange{}, &MalformedRangeError{File: file, Value: v}
		}
		return LineRange{StartLine: line, EndLine: line}, nil
	}
}

func normalizeObject(file string, obj map[string]any) (LineRange, error) {
	for key := range obj {
		switch key {
		case "start_line", "end_line", "note":
		default:
			return LineRange{}, &MalformedRangeError{File: file, Value: obj}
		}
	}
	rawStart, ok := obj["start_line"]
	if !ok {
		return LineRange{}, &MalformedRangeError{File: file, Value: obj}
	}
	start, ok := asLine(rawStart)
	if !ok {
		return LineRange{}, &MalformedRangeError{File: file, Value: obj}
	}
	end := start
	if rawEnd, present := obj["end_line"]; present && rawEnd != nil {
		end, ok = asLine(rawEnd)
		if !ok || end < start {
			return LineRange{}, &MalformedRangeError{File: file, Value: obj}
		}
	}
	var note string
	if rawNote, present := obj["note"]; present && rawNote != nil {
		note, ok = rawNote.(string)
		if !ok {
			return LineRange{}, &MalformedRangeError{File: file, Value: obj}
		}
	}
	return LineRange{StartLine: start, EndLine: end, Note: note}, nil
}

// NormalizeRanges applies NormalizeEntry element-wise to a file's raw range
// list. A nil value passes through unchanged (whole-file reference), an
// empty list is malformed (use null for no lines), and an already-canonical
// list round-trips unchanged.
func NormalizeRanges(file string, raw any) ([]LineRange, error) {
	if raw == nil {
		return nil, nil
	}
	switch list := raw.(type) {
	case []LineRange:
		out := make([]LineRange, 0, len(list))
		for _, r := range list {
			canon, err := NormalizeEntry(file, r)
			if err != nil {
				return nil, err
			}
			out = append(out, canon)
		}
		if len(out) == 0 {
			return nil, &MalformedRangeError{File: file, Value: raw}
		}
		return out, nil
	case []any:
		if len(list) == 0 {
			return nil, &MalformedRangeError{File: file, Value: raw}
		}
		out := make([]LineRange, 0, len(list))
		for _, entry := range list {
			canon, err := NormalizeEntry(file, entry)
			if err != nil {
				return nil, err
			}
			out = append(out, canon)
		}
		return out, nil
	default:
		// A single entry not wrapped in a list (bare number or object).
		canon, err := NormalizeEntry(file, raw)
		if err != nil {
			return nil, err
		}
		return []LineRange{canon}, nil
	}
}

// NormalizeFiles normalizes every range list in a raw file-to-ranges
// mapping. Nil values are preserved as whole-file references.
func NormalizeFiles(raw map[string]any) (FileRanges, error) {
	files := make(FileRanges, len(raw))
	for path, spec := range raw {
		ranges, err := NormalizeRanges(path, spec)
		if err != nil {
			return nil, err
		}
		files[path] = ranges
	}
	return files, nil
}

// asLine coerces YAML/JSON numeric decodings to a positive line number.
func asLine(v any) (int, bool) {
	var n int
	switch num := v.(type) {
	case int:
		n = num
	case int64:
		n = int(num)
	case uint64:
		n = int(num)
	default:
		return 0, false
	}
	if n < 1 {
		return 0, false
	}
	return n, true
}
