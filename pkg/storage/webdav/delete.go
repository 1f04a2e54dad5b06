package webdav

import (
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/fileurl"
)

func (w *WebDAV) Delete(fileKey string) error {
	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey
	return w.Client.Remove(fileKey)
}
