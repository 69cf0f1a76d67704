package sqlinline

const QSelectBrandTheme = `--sql 6d1a8e47-2c9f-4b50-a6d3-81f4b7c2e095
select color_scheme, preferred_styles, mood, lighting
from brand_themes
where user_id = $1::uuid;
`

const QUpsertBrandTheme = `--sql b4e7c093-5a28-4f16-9d7b-3c80e5a1f642
insert into brand_themes(user_id, color_scheme, preferred_styles, mood, lighting, updated_at)
values ($1::uuid, $2::text[], $3::text[], $4::text[], $5::text[], now())
on conflict (user_id) do update
set color_scheme = excluded.color_scheme,
    preferred_styles = excluded.preferred_styles,
    mood = excluded.mood,
    lighting = excluded.lighting,
    updated_at = now();
`
