package cmd

import (
	"fmt"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"

	"github.com/spf13/cobra"
)

var hashpassCmd = &cobra.Command{
	Use:   "hashpass <password>",
	Short: "Print the bcrypt hash of a password for the auth config. // 输出口令的 bcrypt 哈希，用于鉴权配置。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := util.GeneratePasswordHash(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashpassCmd)
}
