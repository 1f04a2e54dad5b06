package global

import (
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT          string
	Name          string = "Momentum Graph Service"
	WebClientName string = "Web"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
