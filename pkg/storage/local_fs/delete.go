package local_fs

import (
	"os"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/fileurl"
)

func (p *LocalFS) Delete(fileKey string) error {
	dstFileKey := p.getSavePath() + fileKey
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}
