package api

import "testing"

func (ts *TestSuite) TestParseRewardAmount() {
	tests := []struct {
		name    string
		in      string
		want    RewardAmount
		wantErr bool
	}{
		{
			name: "whole number",
			in:   "5",
			want: 5000,
		},
		{
			name: "three decimals",
			in:   "1.250",
			want: 1250,
		},
		{
			name: "truncates, not rounds",
			in:   "0.9999",
			want: 999,
		},
		{
			name: "truncates toward zero when negative",
			in:   "-0.9999",
			want: -999,
		},
		{
			name: "short fraction",
			in:   "2.5",
			want: 2500,
		},
		{
			name: "leading dot",
			in:   ".75",
			want: 750,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
		{
			name:    "garbage",
			in:      "1.2.3",
			wantErr: true,
		},
		{
			name:    "sign buried in the fraction",
			in:      "1.-5",
			wantErr: true,
		},
		{
			name:    "bare dot",
			in:      ".",
			wantErr: true,
		},
		{
			name:    "trailing dot",
			in:      "5.",
			wantErr: true,
		},
		{
			name:    "sign only",
			in:      "-",
			wantErr: true,
		},
		{
			name:    "double sign",
			in:      "+-3",
			wantErr: true,
		},
		{
			name:    "letters in the fraction",
			in:      "1.2a",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		ts.T().Run(tt.name, func(t *testing.T) {
			got, err := ParseRewardAmount(tt.in)
			if tt.wantErr {
				ts.Error(err)
				return
			}
			ts.NoError(err)
			ts.Equal(tt.want, got)
		})
	}
}

func (ts *TestSuite) TestRewardAmount_String() {
	tests := []struct {
		name string
		in   RewardAmount
		want string
	}{
		{
			name: "zero",
			in:   0,
			want: "0.000",
		},
		{
			name: "sub-unit",
			in:   42,
			want: "0.042",
		},
		{
			name: "mixed",
			in:   12345,
			want: "12.345",
		},
		{
			name: "negative",
			in:   -1001,
			want: "-1.001",
		},
	}
	for _, tt := range tests {
		ts.T().Run(tt.name, func(t *testing.T) {
			ts.Equal(tt.want, tt.in.String())
		})
	}
}

func (ts *TestSuite) TestRewardAmount_JSONRoundTrip() {
	r := RewardAmount(1250)
	b, err := r.MarshalJSON()
	ts.NoError(err)
	ts.Equal(`"1.250"`, string(b))

	var got RewardAmount
	ts.NoError(got.UnmarshalJSON(b))
	ts.Equal(r, got)
}
