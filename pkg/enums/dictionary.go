package enums

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Entry - одно значение справочника: стабильный ключ, метка для БД и синонимы.
type Entry struct {
	Key      string
	Label    string
	Synonyms []string
}

// Dictionary - неизменяемая таблица перевода между ключами и метками.
// Строится один раз и безопасна для конкурентного чтения.
type Dictionary struct {
	name       string
	defaultKey string
	entries    []Entry
	byKey      map[string]Entry
	index      map[string]string
}

// Normalize приводит строку к каноническому виду:
// "Đang xử lý" -> "dang_xu_ly", "  In-Progress " -> "in_progress".
func Normalize(input string) string {
	if input == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, input)
	if err != nil {
		stripped = input
	}
	stripped = strings.NewReplacer("đ", "d", "Đ", "d").Replace(stripped)
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	pendingSep := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// New собирает справочник и проверяет, что каждое нормализованное написание
// указывает ровно на один ключ.
func New(name, defaultKey string, entries ...Entry) (*Dictionary, error) {
	d := &Dictionary{
		name:       name,
		defaultKey: defaultKey,
		entries:    make([]Entry, 0, len(entries)),
		byKey:      make(map[string]Entry, len(entries)),
		index:      make(map[string]string, len(entries)*4),
	}

	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("справочник %s: пустой ключ", name)
		}
		if _, exists := d.byKey[e.Key]; exists {
			return nil, fmt.Errorf("справочник %s: дублирующийся ключ %q", name, e.Key)
		}
		if e.Label == "" {
			return nil, fmt.Errorf("справочник %s: у ключа %q нет метки", name, e.Key)
		}

		e.Synonyms = append([]string(nil), e.Synonyms...)
		d.byKey[e.Key] = e
		d.entries = append(d.entries, e)

		spellings := append([]string{e.Key, e.Label}, e.Synonyms...)
		for _, s := range spellings {
			n := Normalize(s)
			if n == "" {
				continue
			}
			if owner, taken := d.index[n]; taken && owner != e.Key {
				return nil, fmt.Errorf("справочник %s: %q относится и к %q, и к %q", name, s, owner, e.Key)
			}
			d.index[n] = e.Key
		}
	}

	if _, ok := d.byKey[defaultKey]; !ok {
		return nil, fmt.Errorf("справочник %s: ключ по умолчанию %q отсутствует", name, defaultKey)
	}
	return d, nil
}

// MustNew - для статических таблиц, ошибка здесь означает баг в коде.
func MustNew(name, defaultKey string, entries ...Entry) *Dictionary {
	d, err := New(name, defaultKey, entries...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Dictionary) Name() string       { return d.name }
func (d *Dictionary) DefaultKey() string { return d.defaultKey }

// Keys возвращает ключи в порядке объявления.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// ResolveKey ищет ключ по любому написанию: ключ, метка или синоним.
func (d *Dictionary) ResolveKey(value string) (string, bool) {
	n := Normalize(value)
	if n == "" {
		return "", false
	}
	key, ok := d.index[n]
	return key, ok
}

func (d *Dictionary) Label(key string) (string, bool) {
	e, ok := d.byKey[key]
	if !ok {
		return "", false
	}
	return e.Label, true
}

// ToDB переводит входное значение в метку для записи в БД.
// Если значение не распознано, используется fallbackKey.
func (d *Dictionary) ToDB(value, fallbackKey string) (string, bool) {
	key, ok := d.ResolveKey(value)
	if !ok {
		key, ok = d.ResolveKey(fallbackKey)
	}
	if !ok {
		return "", false
	}
	return d.Label(key)
}

// ToCanonical - обратное направление: метка из БД -> ключ для API.
func (d *Dictionary) ToCanonical(stored, fallbackKey string) string {
	if key, ok := d.ResolveKey(stored); ok {
		return key
	}
	if key, ok := d.ResolveKey(fallbackKey); ok {
		return key
	}
	return d.defaultKey
}

// LabelOrKey удобен для DTO: метка, если ключ известен, иначе сам ключ.
func (d *Dictionary) LabelOrKey(key string) string {
	if label, ok := d.Label(key); ok {
		return label
	}
	return key
}
