// Package manifest downloads, caches and decodes the item manifest that
// record names are searched in.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	rserr "rainstash/internal/errors"
	"rainstash/internal/httpclient"
	"rainstash/internal/logger"
	"rainstash/internal/model"
)

// VanillaURL is the manifest used when no URL is configured.
const VanillaURL = "https://fustran.github.io/rainstash/items/vanilla_items/itemManifest.json"

const (
	SectionItems       = "items"
	SectionClassInfo   = "classInfo"
	SectionCommandSort = "commandSort"
)

// Manifest is the decoded manifest. ClassInfo and CommandSort are empty when
// the document does not carry them.
type Manifest struct {
	Items       map[string]model.Item
	ClassInfo   map[string]map[string]string
	CommandSort []string
}

// Update downloads the manifest at url (VanillaURL when empty) and writes it
// to path, creating parent directories as needed. The body must decode as a
// manifest before the cache is replaced.
func Update(ctx context.Context, client *httpclient.Client, url, path string) error {
	if url == "" {
		url = VanillaURL
	}

	logger.Logger.Info("updating manifest", "url", url)
	body, err := client.Get(ctx, url)
	if err != nil {
		return rserr.WrapFetchFailed(url, err)
	}
	if _, err := Parse(bytes.NewReader(body)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return rserr.WrapCacheIO(path, err)
	}
	// write then rename so readers and watchers never see a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return rserr.WrapCacheIO(tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return rserr.WrapCacheIO(path, err)
	}

	logger.Logger.Info("saved manifest", "path", path, "bytes", len(body))
	return nil
}

func readSections(r io.Reader) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, rserr.WrapDecode("manifest", err)
	}
	return doc, nil
}

// Parse decodes a whole manifest. Only the items section is required.
func Parse(r io.Reader) (*Manifest, error) {
	doc, err := readSections(r)
	if err != nil {
		return nil, err
	}

	raw, ok := doc[SectionItems]
	if !ok {
		return nil, rserr.WrapSectionMissing(SectionItems)
	}
	items, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}

	m := &Manifest{Items: items, ClassInfo: map[string]map[string]string{}}
	if raw, ok := doc[SectionClassInfo]; ok {
		if err := json.Unmarshal(raw, &m.ClassInfo); err != nil {
			return nil, rserr.WrapDecode(SectionClassInfo, err)
		}
	}
	if raw, ok := doc[SectionCommandSort]; ok {
		if err := json.Unmarshal(raw, &m.CommandSort); err != nil {
			return nil, rserr.WrapDecode(SectionCommandSort, err)
		}
	}

	logger.Logger.Debug("parsed manifest", "items", len(m.Items), "classes", len(m.ClassInfo), "sorted", len(m.CommandSort))
	return m, nil
}

func decodeItems(raw json.RawMessage) (map[string]model.Item, error) {
	var items map[string]model.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, rserr.WrapDecode(SectionItems, err)
	}
	for key, it := range items {
		if it.Name == "" {
			return nil, rserr.WrapInvalidItem(key, "missing name")
		}
		if it.Description == "" {
			return nil, rserr.WrapInvalidItem(key, "missing description")
		}
		// names are typed by users; keep one canonical form per glyph
		it.Name = norm.NFC.String(it.Name)
		items[key] = it
	}
	return items, nil
}

func openCache(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rserr.WrapCacheIO(path, err)
	}
	return f, nil
}

// LoadFile parses the manifest cached at path.
func LoadFile(path string) (*Manifest, error) {
	logger.Logger.Debug("opening manifest", "path", path)
	f, err := openCache(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ItemsFromFile decodes only the items section, keyed as in the manifest.
func ItemsFromFile(path string) (map[string]model.Item, error) {
	raw, err := sectionFromFile(path, SectionItems)
	if err != nil {
		return nil, err
	}
	return decodeItems(raw)
}

// ClassInfoFromFile decodes the classInfo section: class name -> attributes.
func ClassInfoFromFile(path string) (map[string]map[string]string, error) {
	raw, err := sectionFromFile(path, SectionClassInfo)
	if err != nil {
		return nil, err
	}
	var out map[string]map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, rserr.WrapDecode(SectionClassInfo, err)
	}
	return out, nil
}

// CommandSortFromFile decodes the commandSort section: item keys in order.
func CommandSortFromFile(path string) ([]string, error) {
	raw, err := sectionFromFile(path, SectionCommandSort)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, rserr.WrapDecode(SectionCommandSort, err)
	}
	return out, nil
}

func sectionFromFile(path, section string) (json.RawMessage, error) {
	f, err := openCache(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := readSections(f)
	if err != nil {
		return nil, err
	}
	raw, ok := doc[section]
	if !ok {
		return nil, rserr.WrapSectionMissing(section)
	}
	return raw, nil
}
