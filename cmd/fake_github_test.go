package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type fakeRelease struct {
	ID         int64  `json:"id"`
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	UploadURL  string `json:"upload_url"`
}

type fakeAsset struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`

	content []byte
}

// fakeGitHub is a stateful stand-in for the release endpoints of the GitHub
// REST API, serving a single owner/repo.
type fakeGitHub struct {
	t     *testing.T
	srv   *httptest.Server
	token string

	mu        sync.Mutex
	nextID    int64
	releases  map[string]*fakeRelease
	assets    map[int64][]*fakeAsset
	calls     []string
	failNames map[string]int
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{
		t:         t,
		token:     "test-token",
		nextID:    100,
		releases:  make(map[string]*fakeRelease),
		assets:    make(map[int64][]*fakeAsset),
		failNames: make(map[string]int),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGitHub) URL() string {
	return f.srv.URL + "/"
}

func (f *fakeGitHub) addRelease(tag string, id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases[tag] = &fakeRelease{
		ID:        id,
		TagName:   tag,
		Name:      tag,
		UploadURL: fmt.Sprintf("%s/uploads/repos/owner/repo/releases/%d/assets{?name,label}", f.srv.URL, id),
	}
}

func (f *fakeGitHub) addAsset(releaseID, id int64, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets[releaseID] = append(f.assets[releaseID], &fakeAsset{ID: id, Name: name})
}

func (f *fakeGitHub) assetNames(releaseID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, a := range f.assets[releaseID] {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}

func (f *fakeGitHub) release(tag string) *fakeRelease {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releases[tag]
}

func (f *fakeGitHub) callsWithPrefix(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGitHub) allCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGitHub) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		f.t.Errorf("failed to encode response: %v", err)
	}
}

func (f *fakeGitHub) notFound(w http.ResponseWriter) {
	f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func (f *fakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+f.token {
		f.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	// GET /repos/owner/repo/releases/tags/{tag}
	case r.Method == http.MethodGet && len(parts) == 6 && parts[0] == "repos" && parts[3] == "releases" && parts[4] == "tags":
		f.calls = append(f.calls, "get "+parts[5])
		rel, ok := f.releases[parts[5]]
		if !ok {
			f.notFound(w)
			return
		}
		f.writeJSON(w, http.StatusOK, rel)

	// POST /repos/owner/repo/releases
	case r.Method == http.MethodPost && len(parts) == 4 && parts[0] == "repos" && parts[3] == "releases":
		var rel fakeRelease
		if err := json.NewDecoder(r.Body).Decode(&rel); err != nil {
			f.writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		f.calls = append(f.calls, "create "+rel.TagName)
		f.nextID++
		rel.ID = f.nextID
		rel.UploadURL = fmt.Sprintf("%s/uploads/repos/owner/repo/releases/%d/assets{?name,label}", f.srv.URL, rel.ID)
		f.releases[rel.TagName] = &rel
		f.writeJSON(w, http.StatusCreated, rel)

	// GET /repos/owner/repo/releases/{id}/assets?per_page=&page=
	case r.Method == http.MethodGet && len(parts) == 6 && parts[0] == "repos" && parts[3] == "releases" && parts[5] == "assets":
		id, _ := strconv.ParseInt(parts[4], 10, 64)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 30
		}
		f.calls = append(f.calls, fmt.Sprintf("list %d page=%d per_page=%d", id, page, perPage))
		all := f.assets[id]
		batch := []*fakeAsset{}
		if start := (page - 1) * perPage; start < len(all) {
			end := start + perPage
			if end > len(all) {
				end = len(all)
			}
			batch = all[start:end]
		}
		f.writeJSON(w, http.StatusOK, batch)

	// DELETE /repos/owner/repo/releases/assets/{id}
	case r.Method == http.MethodDelete && len(parts) == 6 && parts[0] == "repos" && parts[4] == "assets":
		id, _ := strconv.ParseInt(parts[5], 10, 64)
		f.calls = append(f.calls, fmt.Sprintf("delete %d", id))
		for rid, list := range f.assets {
			for i, a := range list {
				if a.ID == id {
					f.assets[rid] = append(list[:i:i], list[i+1:]...)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
		}
		f.notFound(w)

	// POST /uploads/repos/owner/repo/releases/{id}/assets?name=
	case r.Method == http.MethodPost && len(parts) == 7 && parts[0] == "uploads" && parts[6] == "assets":
		id, _ := strconv.ParseInt(parts[5], 10, 64)
		name := r.URL.Query().Get("name")
		f.calls = append(f.calls, "upload "+name)
		if r.Header.Get("Content-Type") != "application/octet-stream" {
			f.writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"message": "bad content type"})
			return
		}
		if status, ok := f.failNames[name]; ok {
			f.writeJSON(w, status, map[string]string{"message": "upload failed"})
			return
		}
		for _, a := range f.assets[id] {
			if a.Name == name {
				f.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Validation Failed: already_exists"})
				return
			}
		}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			f.writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		f.nextID++
		a := &fakeAsset{ID: f.nextID, Name: name, Size: len(data), content: data}
		f.assets[id] = append(f.assets[id], a)
		f.writeJSON(w, http.StatusCreated, a)

	default:
		f.notFound(w)
	}
}
