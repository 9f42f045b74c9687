// This file is part of Pep9.
//
// Pep9 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pep9 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pep9.  If not, see <https://www.gnu.org/licenses/>.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pep9sim/pep9/config"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.NoError(t, c.Validate())
	assert.True(t, c.ExtendedMicrocode)
	assert.Equal(t, "\n", c.CharInDefault)
}

func TestOptions(t *testing.T) {
	c := config.New(
		config.WithExtendedMicrocode(false),
		config.WithForceBurnAtFFFF(true),
		config.WithCacheGeometry(10, 4, 2, 4),
	)
	assert.False(t, c.ExtendedMicrocode)
	assert.True(t, c.ForceBurnAtFFFF)
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	c := config.New(config.WithCacheGeometry(10, 10, 10, 2))
	assert.Error(t, c.Validate())

	c = config.New(config.WithCacheGeometry(9, 2, 5, 8))
	assert.Error(t, c.Validate())
}
