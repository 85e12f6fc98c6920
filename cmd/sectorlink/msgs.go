package main

// Message constants
const (
	MsgRootShort = "Link shared sectorfile data into an Aurora installation"
	MsgRootLong  = `sectorlink locates the sectorfile data folder of an Aurora installation
and links the shared reference data from a SectorFile repository into it.
Hard links, symlinks, and directory junctions are tried in order, so
multiple installations share one on-disk copy of the large data files.`

	MsgExample = `  # Link repo data into an installation
  sectorlink --aurora "C:\Aurora" --repo "D:\SectorFile"

  # Point at the executable instead of the folder
  sectorlink --aurora "C:\Aurora\Aurora.exe" --repo "D:\SectorFile"

  # Preview without touching the filesystem
  sectorlink --aurora "C:\Aurora" --repo "D:\SectorFile" --dry-run

  # Replace existing links and files
  sectorlink --aurora "C:\Aurora" --repo "D:\SectorFile" --force`

	// Flag help
	MsgFlagAurora  = "Aurora install root, sectorfile folder, or Aurora executable"
	MsgFlagRepo    = "SectorFile repository root or SectorFile-MAIN folder"
	MsgFlagForce   = "Replace existing links and files at the destination"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagDebug   = "Enable engine debug diagnostics"
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	// Progress rendering
	MsgLinking = "Linking sectorfile data"
	MsgDone    = "Done"
)

// MsgUsageTemplate is the cobra usage template with bolded section
// headers on terminals.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{bold .CommandPath}} [command] --help" for more information about a command.{{end}}
`
