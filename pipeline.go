package imgschem

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bodgit/imgschem/colortable"
)

const scanWorkers = 10

type texture struct {
	file  string
	name  string
	color colortable.Color
}

func (db *BlockDB) findTextures(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal PNG file
			if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(file), ".png") {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func averageFile(file string) (colortable.Color, error) {
	f, err := os.Open(file)
	if err != nil {
		return colortable.Color{}, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return colortable.Color{}, err
	}

	return colortable.AverageColor(m), nil
}

func (db *BlockDB) textureWorker(ctx context.Context, in <-chan string) (<-chan texture, <-chan error, error) {
	out := make(chan texture)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for file := range in {
			c, err := averageFile(file)
			if err != nil {
				errc <- err
				return
			}

			select {
			case out <- texture{file: file, name: colortable.TextureName(file), color: c}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func mergeTextures(cs ...<-chan texture) <-chan texture {
	var wg sync.WaitGroup
	out := make(chan texture)
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan texture) {
			for t := range c {
				out <- t
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ScanTextures computes the average colour of every PNG texture found under
// path and stores it in the database. Block names are derived from the
// texture filenames and new blocks are added in name order.
func (db *BlockDB) ScanTextures(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error
	var texList []<-chan texture

	files, errc, err := db.findTextures(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		texc, errc, err := db.textureWorker(ctx, files)
		if err != nil {
			return err
		}
		texList = append(texList, texc)
		errcList = append(errcList, errc)
	}

	var textures []texture
	for t := range mergeTextures(texList...) {
		textures = append(textures, t)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	// Workers finish in any order. Where two textures map to the same
	// block, such as "x.png" and "x_top.png", the later filename wins
	sort.Slice(textures, func(i, j int) bool {
		if textures[i].name == textures[j].name {
			return textures[i].file < textures[j].file
		}
		return textures[i].name < textures[j].name
	})

	for _, t := range textures {
		if err := db.SetColor(t.name, t.color); err != nil {
			return err
		}
		db.logger.Printf("Set \"%s\" to %v\n", t.name, t.color)
	}

	return nil
}
