package api

import "proxographer/proxlib"

type closestResponseStruct struct {
	Place   string                `json:"place"`
	Results []proxlib.RankedProxy `json:"results"`
}

func (c *closestResponseStruct) Build(ranked []proxlib.RankedProxy) {
	// nil marshals to null, an empty result should still be a list.
	if ranked == nil {
		ranked = []proxlib.RankedProxy{}
	}

	c.Results = ranked
}
