package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Field 记录中的一个字段
type Field struct {
	Key   string
	Value any
}

// Record 保留字段顺序的 JSON 对象。
// 后端返回的 chart/table 行是开放 schema，列顺序决定了数值回退规则，
// 所以不能用 map 承载。
type Record []Field

// Get 返回字段值，字段不存在时 ok 为 false
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has 判断字段是否存在（值为 null 也算存在）
func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set 覆盖已有字段的值，不存在时追加到末尾
func (r *Record) Set(key string, value any) {
	for i := range *r {
		if (*r)[i].Key == key {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Key: key, Value: value})
}

// Keys 按出现顺序返回字段名
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range r {
		keys = append(keys, f.Key)
	}
	return keys
}

// Clone 浅拷贝
func (r Record) Clone() Record {
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// Number 返回字段的数值。只有 JSON 数字（及 Go 数值类型）算数字，数字字符串不算。
func (r Record) Number(key string) (float64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	return AsNumber(v)
}

// String 返回字符串字段
func (r Record) String(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// AsNumber 把有限的数值转换为 float64
func AsNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToNumber 比 AsNumber 宽松：也接受带千分位逗号的数字字符串，
// 空串和 NA、N/A、- 视为缺失
func ToNumber(v any) (float64, bool) {
	if f, ok := AsNumber(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	switch s {
	case "", "NA", "N/A", "-":
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MarshalJSON 按字段顺序编码
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("record field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 解码 JSON 对象并保留键顺序
func (r *Record) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("record: invalid JSON")
	}
	rec, ok := FromResult(gjson.ParseBytes(data))
	if !ok {
		return errors.New("record: expected a JSON object")
	}
	*r = rec
	return nil
}

// FromResult 把 gjson 对象转换为 Record；重复的键以最后一次出现为准
func FromResult(res gjson.Result) (Record, bool) {
	if !res.IsObject() {
		return nil, false
	}
	rec := Record{}
	res.ForEach(func(key, value gjson.Result) bool {
		rec.Set(key.String(), plain(value))
		return true
	})
	return rec, true
}

func plain(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Float()
	case gjson.String:
		return v.Str
	default:
		// 嵌套的对象和数组不参与展示逻辑，保留为普通的 map/slice
		return v.Value()
	}
}
