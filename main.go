package main

import "github.com/systemcrm/bitrix-planfix-sync/cmd"

func main() {
	cmd.Execute()
}
