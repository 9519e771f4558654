package main

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/imgschem"
	"github.com/bodgit/imgschem/colortable"
	"github.com/urfave/cli/v2"
)

const defaultDB = "imgschem.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadTable(c *cli.Context, logger *log.Logger) (*colortable.Table, error) {
	if file := c.String("table"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return colortable.Load(f)
	}

	db, err := imgschem.NewBlockDB(c.String("db"), logger)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Table()
}

func newConverter(c *cli.Context) (*imgschem.Converter, error) {
	logger := newLogger(c)

	opts := imgschem.DefaultOptions()
	if file := c.String("config"); file != "" {
		var err error
		if opts, err = imgschem.LoadOptions(file); err != nil {
			return nil, err
		}
	}

	t, err := loadTable(c, logger)
	if err != nil {
		return nil, err
	}

	return imgschem.New(t, opts, logger)
}

func withBlockDB(f func(*imgschem.BlockDB, string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		db, err := imgschem.NewBlockDB(c.String("db"), newLogger(c))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer db.Close()

		if err := f(db, c.Args().First()); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "imgschem"
	app.Usage = "Image to block schematic conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"IMGSCHEM_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to block color database",
		},
		&cli.StringFlag{
			Name:  "table",
			Usage: "path to JSON block color table, overrides the database",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to YAML options file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Convert an image to a schematic",
			Description: "",
			ArgsUsage:   "IMAGE SCHEMATIC",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := conv.EncodeFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Render a schematic as a PNG image",
			Description: "",
			ArgsUsage:   "SCHEMATIC IMAGE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := conv.DecodeFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Import a JSON block color table",
			Description: "",
			ArgsUsage:   "FILE",
			Action:      withBlockDB((*imgschem.BlockDB).ImportJSON),
		},
		{
			Name:        "export",
			Usage:       "Export the block colors as a JSON table",
			Description: "",
			ArgsUsage:   "FILE",
			Action:      withBlockDB((*imgschem.BlockDB).ExportJSON),
		},
		{
			Name:        "scan",
			Usage:       "Scan block textures and store their average colors",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action:      withBlockDB((*imgschem.BlockDB).ScanTextures),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
