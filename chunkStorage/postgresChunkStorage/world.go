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

	"github.com/jackc/pgx/v4"
	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/primitives"
)

func (s *PostgresChunkStorage) ListWorlds() ([]string, error) {
	worlds := []string{}
	rows, derr := s.DBPool.Query(context.Background(), `SELECT world, name FROM dimensions ORDER BY world, name`)
	if derr != nil {
		if derr == pgx.ErrNoRows {
			return worlds, nil
		}
		return nil, derr
	}
	defer rows.Close()
	for rows.Next() {
		var wname, dname string
		err := rows.Scan(&wname, &dname)
		if err != nil {
			return worlds, err
		}
		if dname == "overworld" {
			worlds = append(worlds, wname)
		} else {
			worlds = append(worlds, wname+"@"+dname)
		}
	}
	return worlds, rows.Err()
}

func (s *PostgresChunkStorage) getDimID(ctx context.Context, wname string) (int, error) {
	world, dim := chunkStorage.SplitWorldName(wname)
	var dimID int
	err := s.DBPool.QueryRow(ctx, `SELECT id FROM dimensions WHERE world = $1 and name = $2`, world, dim).Scan(&dimID)
	if err == pgx.ErrNoRows {
		return 0, chunkStorage.ErrNoWorld
	}
	return dimID, err
}

// Spawn is not collected, rendering starts at the origin
func (s *PostgresChunkStorage) Spawn(wname string) (primitives.Coord, error) {
	_, err := s.getDimID(context.Background(), wname)
	return primitives.BlockCoord(0, 0), err
}
