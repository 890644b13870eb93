package main

import (
	"sync"

	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/parse"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri       string
	content   string
	version   int32
	file      *manifest.File
	parseErrs []error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	var parseErrs []error
	f, err := parse.Parse([]byte(content), parse.KeepGoing(&parseErrs))
	if err != nil {
		// KeepGoing recovers line errors; only hard failures land here
		parseErrs = append(parseErrs, err)
		f = &manifest.File{}
	}
	ds.docs[uri] = &document{
		uri:       uri,
		content:   content,
		version:   version,
		file:      f,
		parseErrs: parseErrs,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}
