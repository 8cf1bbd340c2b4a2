package main

import (
	"fmt"

	echoapi "github.com/trezcool/shule/apps/api/echo"
)

func (cli *commandLine) token(name string) error {
	token, err := echoapi.GenerateToken(cli.conf, echoapi.NewClaims(cli.conf, name, name))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
