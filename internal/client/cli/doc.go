// Package cli implements the inventory command line: a cobra command tree
// for one-shot operations and an interactive shell (REPL) started when no
// subcommand is given.
//
// Shell commands:
//
//	help                      show available commands
//	list                      list items ordered by name
//	show <id>                 show one item
//	add                       add an item (interactive form)
//	edit <id>                 edit an item
//	delete <id>               delete an item
//	sell <id>                 sell one unit
//	export <id>               export an item as an encrypted file
//	import [path|s3://...]    import an encrypted file as a new item
//	share <id>                print the share summary of an item
//	settings [set <k> <v> | reset]
//	exit | quit               leave the program
package cli
