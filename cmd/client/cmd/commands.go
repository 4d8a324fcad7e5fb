package cmd

import (
	"gophvault/cmd/client/cmd/auth"
	"gophvault/cmd/client/cmd/folder"
	"gophvault/cmd/client/cmd/item"
	"gophvault/cmd/client/cmd/settings"
	"gophvault/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.UnlockCmd)
	auth.AuthCmd.AddCommand(auth.LockCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	rootCmd.AddCommand(item.ItemCmd)
	item.ItemCmd.AddCommand(item.CreateCmd)
	item.ItemCmd.AddCommand(item.GetCmd)
	item.ItemCmd.AddCommand(item.ListCmd)
	item.ItemCmd.AddCommand(item.UpdateCmd)
	item.ItemCmd.AddCommand(item.DeleteCmd)
	item.ItemCmd.AddCommand(item.RestoreCmd)
	item.ItemCmd.AddCommand(item.PurgeCmd)
	item.ItemCmd.AddCommand(item.TrashCmd)

	rootCmd.AddCommand(folder.FolderCmd)
	folder.FolderCmd.AddCommand(folder.CreateCmd)
	folder.FolderCmd.AddCommand(folder.ListCmd)
	folder.FolderCmd.AddCommand(folder.RenameCmd)
	folder.FolderCmd.AddCommand(folder.DeleteCmd)

	rootCmd.AddCommand(sync.SyncCmd)

	rootCmd.AddCommand(settings.SettingsCmd)
	settings.SettingsCmd.AddCommand(settings.ShowCmd)
	settings.SettingsCmd.AddCommand(settings.SetCmd)
}
