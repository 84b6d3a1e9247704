package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Field describes a single settable config key, discovered by walking
// a config struct's `config:"..."` tags, generalized to any depth of
// nested struct rather than a fixed two-level category.key.
type Field struct {
	Key      string
	Desc     string
	ReadOnly bool
}

// Fields walks cfg (a pointer to Config or GlobalConfig) and returns
// every leaf config key in sorted order.
func Fields(cfg interface{}) []Field {
	var fields []Field
	walkFields(reflect.ValueOf(cfg).Elem(), reflect.TypeOf(cfg).Elem(), &fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

func walkFields(v reflect.Value, t reflect.Type, out *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		key := field.Tag.Get("config")
		if key == "" {
			continue
		}
		if value.Kind() == reflect.Struct {
			walkFields(value, field.Type, out)
			continue
		}
		*out = append(*out, Field{
			Key:      key,
			Desc:     field.Tag.Get("desc"),
			ReadOnly: field.Tag.Get("readonly") == "true",
		})
	}
}

// findValue locates the reflect.Value for key within cfg, descending
// into every nested struct field (whatever its own tag) and matching a
// leaf whose full `config:"..."` tag equals key.
func findValue(v reflect.Value, t reflect.Type, key string) (reflect.Value, bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		tag := field.Tag.Get("config")

		if value.Kind() == reflect.Struct {
			if found, ok := findValue(value, field.Type, key); ok {
				return found, true
			}
			continue
		}
		if tag == key {
			return value, true
		}
	}
	return reflect.Value{}, false
}

// getFieldValue reads key's current value from cfg as a string.
func getFieldValue(cfg interface{}, key string) (string, bool) {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	fv, ok := findValue(v, t, key)
	if !ok {
		return "", false
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(fv.Bool()), true
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(fv.Int(), 10), true
	default:
		return fmt.Sprintf("%v", fv.Interface()), true
	}
}

// setFieldValue parses value according to key's field kind and assigns
// it on cfg.
func setFieldValue(cfg interface{}, key, value string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	fv, ok := findValue(v, t, key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	if !fv.CanSet() {
		return fmt.Errorf("config key %s is read-only", key)
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		fv.SetInt(n)
	default:
		return fmt.Errorf("unsupported field type for key: %s", key)
	}
	return nil
}

// ListKeys returns every settable key in cfg, sorted.
func ListKeys(cfg interface{}) []string {
	fields := Fields(cfg)
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.ReadOnly {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
