package storage

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/motorline/vehicle-finder/pkg/index"
	"github.com/motorline/vehicle-finder/pkg/types"
)

const vehiclesFile = "vehicles.jz"

// DiskStorage keeps a gzipped JSON snapshot of the vehicle collection so a
// restart does not need a full feed replay.
type DiskStorage struct {
	Country    string
	RootFolder string
}

func NewDiskStorage(country, rootFolder string) *DiskStorage {
	return &DiskStorage{
		Country:    country,
		RootFolder: rootFolder,
	}
}

func (d *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(d.RootFolder, d.Country, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

// SaveVehicles writes a snapshot atomically: full write to a temp file, then
// rename over the previous snapshot.
func (d *DiskStorage) SaveVehicles(catalog *index.Catalog) error {
	vehicles, _ := catalog.Snapshot()
	fileName, tmpFileName := d.GetFileName(vehiclesFile)
	if err := os.MkdirAll(path.Dir(fileName), 0755); err != nil {
		return err
	}
	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	zipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(zipWriter)
	for _, vehicle := range vehicles {
		if err = encoder.Encode(vehicle); err != nil {
			break
		}
	}
	if zerr := zipWriter.Close(); err == nil {
		err = zerr
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	log.Printf("Saved %d vehicles to %s", len(vehicles), fileName)
	return os.Rename(tmpFileName, fileName)
}

// LoadVehicles streams the snapshot into the catalog. A missing snapshot is
// not an error, the feed repopulates from scratch.
func (d *DiskStorage) LoadVehicles(catalog *index.Catalog) error {
	fileName, _ := d.GetFileName(vehiclesFile)
	file, err := os.Open(fileName)
	if os.IsNotExist(err) {
		log.Printf("No vehicle snapshot at %s, starting empty", fileName)
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	decoder := json.NewDecoder(zipReader)
	loaded := 0
	batch := make([]*types.Vehicle, 0, 1024)
	for decoder.More() {
		vehicle := &types.Vehicle{}
		if err := decoder.Decode(vehicle); err != nil {
			return err
		}
		batch = append(batch, vehicle)
		loaded++
	}
	catalog.Upsert(batch...)
	log.Printf("Loaded %d vehicles from %s", loaded, fileName)
	return nil
}
