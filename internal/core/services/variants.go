package services

import (
	"net/url"
	"strings"
	"unicode"
)

// maxVariants caps the candidate paths generated for one seed string.
// Probing is cheap but not free, and the heuristic strategy multiplies
// seeds by query tokens; the cap keeps the whole pipeline bounded.
const maxVariants = 24

// PathVariants generates an ordered, deduplicated list of candidate
// archive paths for a title, query fragment or stale path. The seed
// itself always comes first; more speculative rewrites follow. Pure
// string transformation, no archive access.
func PathVariants(seed string) []string {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{}, maxVariants)
	add := func(p string) {
		if p == "" || len(out) >= maxVariants {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	add(seed)

	// Percent-encoded references ("Paris%2C_France") appear in
	// redirect targets and external links.
	if decoded, err := url.PathUnescape(seed); err == nil {
		add(decoded)
	}

	// Separator normalisation.
	add(strings.ReplaceAll(seed, " ", "_"))
	add(strings.ReplaceAll(seed, "_", " "))

	// Punctuation that archives encode inconsistently.
	for _, r := range []string{":", "'", `"`} {
		if strings.Contains(seed, r) {
			add(strings.ReplaceAll(seed, r, "_"))
			add(strings.ReplaceAll(seed, r, ""))
		}
	}

	// Bucketed and unbucketed forms. Archives sharded by first letter
	// store "Hockey" at "H/Hockey"; flat archives store it bare.
	bare := seed
	if bucket, rest, ok := splitBucket(seed); ok {
		add(rest)
		add(bucket + "/" + strings.ReplaceAll(rest, " ", "_"))
		bare = rest
	}
	for _, form := range caseForms(strings.ReplaceAll(bare, " ", "_")) {
		add(form)
		if first := firstLetter(form); first != "" {
			add(first + "/" + form)
		}
		add("A/" + form)
	}

	return out
}

// splitBucket splits a "X/Rest" bucketed path. Only single-letter
// buckets count; "Category/Foo" is not a bucket.
func splitBucket(path string) (bucket, rest string, ok bool) {
	i := strings.IndexByte(path, '/')
	if i != 1 || len(path) < 3 {
		return "", "", false
	}
	return path[:1], path[2:], true
}

// caseForms returns the case rewrites of s worth probing, most likely
// first: unchanged, first-letter capitalised, title case, lower, upper.
func caseForms(s string) []string {
	if s == "" {
		return nil
	}
	forms := []string{s, capitalise(s), titleCase(s), strings.ToLower(s), strings.ToUpper(s)}
	out := make([]string, 0, len(forms))
	seen := make(map[string]struct{}, len(forms))
	for _, f := range forms {
		if _, dup := seen[f]; !dup {
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// capitalise upper-cases the first rune only.
func capitalise(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// titleCase capitalises each word, where words are separated by spaces
// or underscores.
func titleCase(s string) string {
	r := []rune(strings.ToLower(s))
	start := true
	for i, c := range r {
		if start && unicode.IsLetter(c) {
			r[i] = unicode.ToUpper(c)
		}
		start = c == ' ' || c == '_'
	}
	return string(r)
}

// firstLetter returns the upper-cased first letter of s, or "" when s
// does not start with a letter.
func firstLetter(s string) string {
	for _, c := range s {
		if unicode.IsLetter(c) {
			return string(unicode.ToUpper(c))
		}
		return ""
	}
	return ""
}
