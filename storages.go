/*
	livemap, live tile renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package main

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/livemap/chunkStorage/postgresChunkStorage"
)

var (
	errStorageTypeNotImplemented = errors.New("storage type not implemented")
	storages                     map[string]chunkStorage.Storage
	storagesLock                 sync.Mutex
)

func initStorages(ctx context.Context) error {
	log.Println("Initializing storages...")
	storagesLock.Lock()
	defer storagesLock.Unlock()
	err := cfg.GetToStruct(&storages, "storages")
	if err != nil && !errors.Is(err, lac.ErrNoKey) {
		return err
	}
	if len(storages) == 0 {
		log.Println("No storages to initialize")
		storages = map[string]chunkStorage.Storage{}
		return nil
	}
	for k, v := range storages {
		v.Name = k
		d, err := initStorage(ctx, v.Type, v.Address)
		if err != nil {
			log.Printf("Failed to initialize storage %s: %v", k, err)
			storages[k] = v
			continue
		}
		ver, err := d.GetStatus()
		if err != nil {
			log.Printf("Error getting storage %s status: %v", k, err)
			d.Close()
			storages[k] = v
			continue
		}
		v.Driver = d
		storages[k] = v
		log.Printf("Storage %s initialized: %s", k, ver)
	}
	return nil
}

func initStorage(ctx context.Context, storageType, address string) (driver chunkStorage.ChunkStorage, err error) {
	switch storageType {
	case "postgres":
		driver, err = postgresChunkStorage.NewPostgresChunkStorage(ctx, address)
		if err != nil {
			return nil, err
		}
		return driver, nil
	case "filesystem":
		driver, err = filesystemChunkStorage.NewFilesystemChunkStorage(address)
		if err != nil {
			return nil, err
		}
		return driver, nil
	case "memory":
		return demoStorage(address), nil
	default:
		return nil, errStorageTypeNotImplemented
	}
}

// demoStorage holds one flat world named after address,
// 2x2 regions of grass with a lake
func demoStorage(wname string) *chunkStorage.MemoryChunkStorage {
	if wname == "" {
		wname = "demo"
	}
	s := chunkStorage.NewMemoryChunkStorage()
	grass := []chunkStorage.BlockState{{Name: "bedrock"}, {Name: "stone"}, {Name: "dirt"}, {Name: "grass_block"}}
	water := []chunkStorage.BlockState{{Name: "bedrock"}, {Name: "sand"}, {Name: "water"}, {Name: "water"}}
	for cz := -32; cz < 32; cz++ {
		for cx := -32; cx < 32; cx++ {
			layers := grass
			if cx*cx+cz*cz < 64 {
				layers = water
			}
			s.AddChunk(wname, chunkStorage.NewFlatChunk(cx, cz, 60, "plains", layers...))
		}
	}
	return s
}

func storageList() []chunkStorage.Storage {
	storagesLock.Lock()
	defer storagesLock.Unlock()
	ret := make([]chunkStorage.Storage, 0, len(storages))
	for _, s := range storages {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

func listWorlds() []string {
	storagesLock.Lock()
	defer storagesLock.Unlock()
	w := chunkStorage.ListWorlds(storages)
	sort.Strings(w)
	return w
}

func resolveWorldStorage(wname string) (chunkStorage.ChunkStorage, error) {
	storagesLock.Lock()
	defer storagesLock.Unlock()
	return chunkStorage.GetWorldStorage(storages, wname)
}

func closeStorages() {
	storagesLock.Lock()
	defer storagesLock.Unlock()
	if err := chunkStorage.CloseStorages(storages); err != nil {
		log.Printf("Failed to close storages: %v", err)
	}
}
