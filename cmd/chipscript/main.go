package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aligator/chipscript"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "chipscript",
		Usage: "run tiny scripts stored on a block volume image",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load the volume setup from YAML `FILE`",
			},
			&cli.StringFlag{
				Name:    "image",
				Aliases: []string{"i"},
				Usage:   "volume image `FILE` (overrides the config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "trigger one execution run and print the snapshot",
				Action: runAction,
			},
			{
				Name:   "ls",
				Usage:  "list the root directory of the image",
				Action: lsAction,
			},
			{
				Name:      "cat",
				Usage:     "print the first sector of a file on the image",
				ArgsUsage: "NAME",
				Action:    catAction,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("chipscript failed", "error", err)
		os.Exit(1)
	}
}

// setup resolves the configuration from the --config and --image flags.
func setup(c *cli.Context) (chipscript.Config, error) {
	fsys := afero.NewOsFs()

	config := chipscript.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		config, err = chipscript.LoadConfig(fsys, path)
		if err != nil {
			return config, err
		}
	}

	if image := c.String("image"); image != "" {
		config.Image = image
	}

	return config, nil
}

// mount opens the configured image as a volume. The caller must close the
// returned image if err == nil.
func mount(config chipscript.Config) (*chipscript.Volume, *chipscript.SectorImage, error) {
	image, err := chipscript.OpenImage(afero.NewOsFs(), config.Image)
	if err != nil {
		return nil, nil, err
	}

	return chipscript.NewVolume(image, config.VolumeLayout()), image, nil
}

func runAction(c *cli.Context) error {
	config, err := setup(c)
	if err != nil {
		return err
	}

	// An unusable image counts as an absent medium, the run itself still
	// succeeds using the built-in program.
	var volume *chipscript.Volume
	if config.Image != "" {
		mounted, image, err := mount(config)
		if err != nil {
			slog.Warn("medium unavailable, using the built-in program", "image", config.Image, "error", err)
		} else {
			defer image.Close()
			volume = mounted
		}
	}

	loader := chipscript.NewLoader(volume, func() bool { return volume != nil })
	controller := chipscript.NewController(loader)
	controller.Trigger()

	printSnapshot(controller.Snapshot())
	return nil
}

func printSnapshot(snapshot chipscript.Snapshot) {
	for _, line := range snapshot.Outputs {
		fmt.Println(line)
	}

	if len(snapshot.Variables) > 0 {
		fmt.Println()
		for _, v := range snapshot.Variables {
			fmt.Printf("%s\t%d\n", v.Name, v.Value)
		}
	}

	fmt.Println()
	if snapshot.Error != "" {
		fmt.Printf("state: %v (%s)\n", snapshot.State, snapshot.Error)
		return
	}
	fmt.Printf("state: %v, last output: %d\n", snapshot.State, snapshot.LastOutputValue)
}

func lsAction(c *cli.Context) error {
	config, err := setup(c)
	if err != nil {
		return err
	}

	volume, image, err := mount(config)
	if err != nil {
		return err
	}
	defer image.Close()

	entries, err := volume.ListRoot()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		modTime := "-"
		if !entry.ModTime.IsZero() {
			modTime = entry.ModTime.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%-12s %6d bytes  cluster %-5d %s\n", entry.Name, entry.Size, entry.Cluster, modTime)
	}

	return nil
}

func catAction(c *cli.Context) error {
	config, err := setup(c)
	if err != nil {
		return err
	}

	name := c.Args().First()
	if name == "" {
		return cli.Exit("please provide a file name like PROGRAM.C", 1)
	}

	volume, image, err := mount(config)
	if err != nil {
		return err
	}
	defer image.Close()

	cluster, err := volume.Locate(name)
	if err != nil {
		return err
	}

	content, err := volume.Extract(cluster, chipscript.SectorSize)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(content)
	return err
}
