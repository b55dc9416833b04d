package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash for auth.passwordHash",
		Long: `Print the bcrypt hash of a password for the auth.passwordHash setting.
The password is read from the first line of stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.Wrap(err, "read password")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := service.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
