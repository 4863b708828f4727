package InputParameters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inputFile = []byte(`
Title: "Plate under shear"
Dimension: 2
Formulation: nonlinear
Material:
  Young: 210.e9
  Poisson: 0.3
  Thickness: 0.01
  PlaneStress: true
Prestress:
  - [1.e6, 2.e5]
  - [2.e5, 0]
ParallelDegree: 4
Displacement:
  Scale: 0.5
  Uniform: [1, 0]
  Gradient:
    - [0, -1]
    - [1, 0]
`)

func TestInputParameters(t *testing.T) {
	var ip InputParametersFEA
	require.NoError(t, ip.Parse(inputFile))
	require.NoError(t, ip.Validate())
	assert.Equal(t, "Plate under shear", ip.Title)
	assert.Equal(t, NonLinear, ip.Formulation)
	assert.Equal(t, 4, ip.ParallelDegree)
	assert.Equal(t, []float64{1.e6, 2.e5, 2.e5, 0}, ip.PrestressTensor())
	le, err := ip.NewMaterial()
	require.NoError(t, err)
	assert.Equal(t, 210.e9, le.Young)
	assert.True(t, le.PlaneStress)
	{ // u = 0.5 * ((1, 0) + (-y, x))
		assert.Equal(t, []float64{0.5 - 1, 1}, ip.DisplacementAt([]float64{2, 2}))
	}
	var buf bytes.Buffer
	ip.Print(&buf)
	assert.Contains(t, buf.String(), "Plate under shear")
	assert.Contains(t, buf.String(), "[NonLinear]")
}

func TestInputParametersDefaults(t *testing.T) {
	var ip InputParametersFEA
	require.NoError(t, ip.Parse([]byte("Dimension: 3\nMaterial: {Young: 1, Poisson: 0.25}\n")))
	require.NoError(t, ip.Validate())
	assert.Equal(t, Linear, ip.Formulation)
	assert.Equal(t, 1., ip.Material.Thickness)
	assert.Nil(t, ip.PrestressTensor())
	assert.Equal(t, []float64{0, 0, 0}, ip.DisplacementAt([]float64{1, 2, 3}))
}

func TestInputParametersValidate(t *testing.T) {
	cases := map[string]string{
		"dimension":     "Dimension: 1\nMaterial: {Young: 1}\n",
		"formulation":   "Dimension: 2\nFormulation: plastic\nMaterial: {Young: 1}\n",
		"material":      "Dimension: 2\nMaterial: {Young: -1}\n",
		"parallel":      "Dimension: 2\nMaterial: {Young: 1}\nParallelDegree: -2\n",
		"prestress":     "Dimension: 2\nMaterial: {Young: 1}\nPrestress: [[1, 2, 3], [1, 2, 3]]\n",
		"asymmetric":    "Dimension: 2\nMaterial: {Young: 1}\nPrestress: [[1, 2], [3, 4]]\n",
		"displacement":  "Dimension: 3\nMaterial: {Young: 1}\nDisplacement: {Uniform: [1, 2]}\n",
		"gradient rows": "Dimension: 2\nMaterial: {Young: 1}\nDisplacement: {Gradient: [[1, 2]]}\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			var ip InputParametersFEA
			require.NoError(t, ip.Parse([]byte(input)))
			assert.Error(t, ip.Validate())
		})
	}
	var ip InputParametersFEA
	assert.Error(t, ip.Parse([]byte("Dimension: [")))
}
