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

package postgresChunkStorage

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v4"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/primitives"
)

func (s *PostgresChunkStorage) ListRegions(wname string) ([]primitives.Coord, error) {
	dimID, err := s.getDimID(context.Background(), wname)
	if err != nil {
		return nil, err
	}
	rows, err := s.DBPool.Query(context.Background(),
		`SELECT DISTINCT x >> 5, z >> 5 FROM chunks WHERE dim = $1`, dimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []primitives.Coord{}
	for rows.Next() {
		var rx, rz int32
		if err := rows.Scan(&rx, &rz); err != nil {
			return ret, err
		}
		ret = append(ret, primitives.RegionCoord(int(rx), int(rz)))
	}
	return ret, rows.Err()
}

func (s *PostgresChunkStorage) LoadRegion(ctx context.Context, wname string, pos primitives.Coord) (*chunkStorage.Region, error) {
	pos = pos.Region()
	ret := chunkStorage.NewRegion(pos.X, pos.Z)
	dimID, err := s.getDimID(ctx, wname)
	if err != nil {
		return nil, err
	}
	cx0, cz0 := primitives.RegionToChunk(pos.X), primitives.RegionToChunk(pos.Z)
	rows, err := s.DBPool.Query(ctx, `
		with grp as
		 (
			select x, z, data, created_at, dim, id,
				rank() over (partition by x, z order by x, z, created_at desc) r
			from chunks where dim = $5 AND x >= $1 AND z >= $2 AND x < $3 AND z < $4
		)
		select data, id
		from grp
		where r = 1`, cx0, cz0, cx0+primitives.RegionChunks, cz0+primitives.RegionChunks, dimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d []byte
		var cid int
		if err := rows.Scan(&d, &cid); err != nil {
			return nil, err
		}
		c, err := chunkStorage.LoadChunk(d)
		if err != nil {
			log.Printf("Chunk %d: %s", cid, err.Error())
			if c == nil {
				continue
			}
		}
		ret.SetChunk(c)
	}
	return ret, rows.Err()
}

func (s *PostgresChunkStorage) LoadChunk(ctx context.Context, wname string, pos primitives.Coord) (*chunkStorage.Chunk, error) {
	pos = pos.Chunk()
	dimID, err := s.getDimID(ctx, wname)
	if err != nil {
		return nil, err
	}
	var d []byte
	err = s.DBPool.QueryRow(ctx,
		`SELECT data FROM chunks WHERE dim = $1 AND x = $2 AND z = $3 ORDER BY created_at DESC LIMIT 1`,
		dimID, pos.X, pos.Z).Scan(&d)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := chunkStorage.LoadChunk(d)
	if c == nil {
		return nil, err
	}
	return c, nil
}
